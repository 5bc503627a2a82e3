package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/util"
)

const (
	minPasswordLength = 8
	maxNumQuestions   = 50
)

// Validator provides request validation functionality. Every method returns
// the first failure as a *domain.DomainError naming the offending field.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSaveQuizAttempt checks required header fields in wire order, then
// the non-negative counters, then every answer record.
func (v *Validator) ValidateSaveQuizAttempt(req *dto.SaveQuizAttemptRequest) error {
	if req == nil {
		return domain.NewValidationError("", "Request body is required")
	}

	required := []struct {
		name    string
		present bool
	}{
		{"user_id", req.UserID != nil},
		{"total_time_taken", req.TotalTimeTaken != nil},
		{"score", req.Score != nil},
		{"correct_attempts", req.CorrectAttempts != nil},
		{"incorrect_attempts", req.IncorrectAttempts != nil},
		{"partial_attempts", req.PartialAttempts != nil},
		{"unattempted", req.Unattempted != nil},
		{"topic", req.Topic != nil},
		{"subtopic", req.Subtopic != nil},
		{"question_attempts", req.QuestionAttempts != nil},
	}
	for _, f := range required {
		if !f.present {
			return domain.NewMissingFieldError(f.name)
		}
	}

	if strings.TrimSpace(*req.UserID) == "" {
		return domain.NewMissingFieldError("user_id")
	}
	if !util.IsULID(*req.UserID) {
		return domain.NewValidationError("user_id", fmt.Sprintf("Invalid user_id: %s", *req.UserID))
	}
	if strings.TrimSpace(*req.Topic) == "" {
		return domain.NewMissingFieldError("topic")
	}

	counters := []struct {
		name  string
		value int
	}{
		{"total_time_taken", *req.TotalTimeTaken},
		{"correct_attempts", *req.CorrectAttempts},
		{"incorrect_attempts", *req.IncorrectAttempts},
		{"partial_attempts", *req.PartialAttempts},
		{"unattempted", *req.Unattempted},
	}
	for _, c := range counters {
		if c.value < 0 {
			return domain.NewValidationError(c.name, fmt.Sprintf("%s must not be negative", c.name))
		}
	}

	for i, qa := range req.QuestionAttempts {
		if qa.QuestionID == nil {
			return domain.NewMissingFieldError(fmt.Sprintf("question_attempts[%d].question_id", i))
		}
		if qa.TimeTaken != nil && *qa.TimeTaken < 0 {
			field := fmt.Sprintf("question_attempts[%d].time_taken", i)
			return domain.NewValidationError(field, fmt.Sprintf("%s must not be negative", field))
		}
	}
	return nil
}

// ValidateUserID checks the quiz-history query parameter.
func (v *Validator) ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewMissingFieldError("user_id")
	}
	if !util.IsULID(userID) {
		return domain.NewValidationError("user_id", fmt.Sprintf("Invalid user_id: %s", userID))
	}
	return nil
}

func (v *Validator) ValidateSignup(req *dto.SignupRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return domain.NewMissingFieldError("name")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return domain.NewMissingFieldError("password")
	}
	if len(req.Password) < minPasswordLength {
		return domain.NewValidationError("password",
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return nil
}

func (v *Validator) ValidateLogin(req *dto.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return domain.NewMissingFieldError("email")
	}
	if req.Password == "" {
		return domain.NewMissingFieldError("password")
	}
	return nil
}

func (v *Validator) ValidateRefresh(req *dto.RefreshTokenRequest) error {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return domain.NewMissingFieldError("refresh_token")
	}
	return nil
}

func (v *Validator) ValidateSearch(req *dto.SearchRequest) error {
	if strings.TrimSpace(req.SearchQuery) == "" {
		return domain.NewMissingFieldError("search_query")
	}
	return nil
}

// ValidateGenerateQuiz fills in the question type and count defaults before
// checking them.
func (v *Validator) ValidateGenerateQuiz(req *dto.GenerateQuizRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.NewMissingFieldError("topic")
	}
	if req.QuestionType == "" {
		req.QuestionType = string(domain.QuestionTypeSingleChoice)
	}
	qt := domain.ParseQuestionType(req.QuestionType)
	if !qt.IsValid() {
		return domain.NewValidationError("question_type", fmt.Sprintf("Unsupported question_type: %s", req.QuestionType))
	}
	req.QuestionType = string(qt)
	if req.NumQuestions == 0 {
		req.NumQuestions = 10
	}
	if req.NumQuestions < 0 || req.NumQuestions > maxNumQuestions {
		return domain.NewValidationError("num_questions",
			fmt.Sprintf("num_questions must be between 1 and %d", maxNumQuestions))
	}
	return nil
}

func (v *Validator) ValidateTopicResource(req *dto.TopicResourceRequest) error {
	if strings.TrimSpace(req.TopicName) == "" {
		return domain.NewMissingFieldError("topic_name")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewMissingFieldError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewValidationError("email", fmt.Sprintf("Invalid email: %s", email))
	}
	return nil
}
