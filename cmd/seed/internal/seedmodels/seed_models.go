package seedmodels

// SeedQuestion is one question in the JSON seed file. CorrectAnswers are
// indices into Options.
type SeedQuestion struct {
	Type           string   `json:"type"`
	Subtopic       string   `json:"subtopic"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
}

// SeedTopic is a topic with its overview and starter questions.
type SeedTopic struct {
	Name      string         `json:"topic_name"`
	Content   string         `json:"content"`
	Questions []SeedQuestion `json:"questions"`
}
