package dto

// SaveQuizAttemptRequest is the body of POST /quiz/save-quiz-attempt.
// Pointer fields distinguish an absent field from its zero value.
// @Description Finished quiz session with per-question answers
type SaveQuizAttemptRequest struct {
	UserID            *string                  `json:"user_id"`
	TotalTimeTaken    *int                     `json:"total_time_taken"`
	Score             *int                     `json:"score"`
	CorrectAttempts   *int                     `json:"correct_attempts"`
	IncorrectAttempts *int                     `json:"incorrect_attempts"`
	PartialAttempts   *int                     `json:"partial_attempts"`
	Unattempted       *int                     `json:"unattempted"`
	Topic             *string                  `json:"topic"`
	Subtopic          *string                  `json:"subtopic"`
	IsNegativeMarking *bool                    `json:"is_negative_marking,omitempty"`
	QuestionAttempts  []QuestionAttemptRequest `json:"question_attempts"`
}

// QuestionAttemptRequest is one answered question. Missing or empty
// attempted_options means the question was skipped.
type QuestionAttemptRequest struct {
	QuestionID       *int64 `json:"question_id"`
	TimeTaken        *int   `json:"time_taken,omitempty"`
	AttemptedOptions []int  `json:"attempted_options"`
}

// StatusResponse is the bare success acknowledgement.
type StatusResponse struct {
	Status string `json:"status" example:"success"`
}

// QuizHistoryResponse is the body of GET /quiz/quiz-history.
type QuizHistoryResponse struct {
	Status  string            `json:"status" example:"success"`
	Quizzes []QuizHistoryItem `json:"quizzes"`
}

// QuizHistoryItem summarises one past attempt. QuestionType is null when the
// attempt has no answered questions.
type QuizHistoryItem struct {
	ID                 string                `json:"id"`
	Topic              string                `json:"topic"`
	Subtopic           string                `json:"subtopic"`
	Date               string                `json:"date" example:"2026-03-01"`
	Percentage         float64               `json:"percentage"`
	TotalPossibleScore int                   `json:"total_possible_score"`
	Score              int                   `json:"score"`
	TimeSpent          int                   `json:"timeSpent"`
	NegativeMarking    bool                  `json:"negativeMarking"`
	QuestionType       *string               `json:"question_type"`
	Questions          []QuestionHistoryItem `json:"questions"`
}

type QuestionHistoryItem struct {
	QuestionID       int64    `json:"question_id"`
	Question         string   `json:"question"`
	Options          []string `json:"options"`
	CorrectAnswers   []int    `json:"correctAnswers"`
	SelectedAnswers  []int    `json:"selectedAnswers"`
	IsCorrect        bool     `json:"isCorrect"`
	PartiallyCorrect bool     `json:"partiallyCorrect"`
	TimeTaken        int      `json:"timeTaken"`
	Score            int      `json:"score"`
	Explanation      string   `json:"explanation"`
}
