package dto

// @Description Topic overview lookup
type SearchRequest struct {
	SearchQuery string `json:"search_query"`
}

type SearchResponse struct {
	Result string `json:"result"`
}

// @Description Quiz generation parameters
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	Subtopic     string `json:"subtopic"`
	QuestionType string `json:"question_type" example:"mcq"`
	NumQuestions int    `json:"num_questions" example:"10"`
}

type GenerateQuizResponse struct {
	Quiz QuizPayload `json:"quiz"`
}

type QuizPayload struct {
	Quiz []QuizQuestionResponse `json:"quiz"`
}

type QuizQuestionResponse struct {
	ID             int64    `json:"id"`
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
}

// TopicResourceRequest selects resources for a topic and optional subtopic.
type TopicResourceRequest struct {
	TopicName    string `json:"topic_name"`
	SubtopicName string `json:"subtopic_name"`
}

type VideoResponse struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

type VideosResponse struct {
	Videos []VideoResponse `json:"videos"`
}

type ArticleResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ReadTime string `json:"readTime"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

type DocumentationItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type DocumentationResponse struct {
	Documentation []DocumentationItem `json:"documentation"`
}
