package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType is the wire tag of a question variant.
type QuestionType string

const (
	QuestionTypeSingleChoice    QuestionType = "mcq"
	QuestionTypeTrueFalse       QuestionType = "true-false"
	QuestionTypeMultipleCorrect QuestionType = "multiple-correct"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeTrueFalse, QuestionTypeMultipleCorrect:
		return true
	}
	return false
}

// ParseQuestionType normalizes the spellings the generator and clients use.
func ParseQuestionType(s string) QuestionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "single-choice", "single_choice", "single":
		return QuestionTypeSingleChoice
	case "true-false", "true_false", "truefalse", "boolean":
		return QuestionTypeTrueFalse
	case "multiple-correct", "multiple_correct", "multi":
		return QuestionTypeMultipleCorrect
	}
	return QuestionType(s)
}

// Topic is a learning subject. Content holds the generated overview text.
type Topic struct {
	ID        int64
	Name      string
	Content   string
	CreatedAt time.Time
}

// Question is created once and reused by every attempt that answers it.
// CorrectAnswers and submitted answers are indices into Options.
type Question struct {
	ID             int64
	TopicID        int64
	Subtopic       string
	Type           QuestionType
	Text           string
	Options        []string
	CorrectAnswers []int
	Explanation    string
	Source         string
	CreatedAt      time.Time
}

// Validate enforces the shape of a question before it is stored.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question", "question text is required")
	}
	if !q.Type.IsValid() {
		return NewValidationError("type", fmt.Sprintf("unsupported question type: %q", q.Type))
	}
	if len(q.Options) < 2 {
		return NewValidationError("options", "at least two options are required")
	}
	if len(q.CorrectAnswers) == 0 {
		return NewValidationError("correct_answers", "at least one correct answer is required")
	}
	if q.Type != QuestionTypeMultipleCorrect && len(q.CorrectAnswers) != 1 {
		return NewValidationError("correct_answers", fmt.Sprintf("%s questions take exactly one correct answer", q.Type))
	}
	seen := make(map[int]struct{}, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			return NewValidationError("correct_answers", fmt.Sprintf("correct answer %d is not an option", idx))
		}
		if _, dup := seen[idx]; dup {
			return NewValidationError("correct_answers", fmt.Sprintf("correct answer %d is listed twice", idx))
		}
		seen[idx] = struct{}{}
	}
	return nil
}
