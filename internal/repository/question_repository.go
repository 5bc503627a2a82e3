package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/repository/models"
	"topic-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, topic_id, subtopic, question_type, question, options, correct_answers, explanation, source, created_at`

type sqlxQuestionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

// GetQuestionByID returns (nil, nil) when the question does not exist.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	var q models.Question
	query := `SELECT ` + questionColumns + ` FROM quiz_questions WHERE id = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &q, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&q), nil
}

// ListQuestions returns the stored question bank for a topic, subtopic and type.
func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context, topicID int64, subtopic string, questionType domain.QuestionType) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM quiz_questions
	          WHERE topic_id = :1 AND NVL(subtopic, ' ') = NVL(:2, ' ') AND question_type = :3
	          ORDER BY id`

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, topicID, subtopic, string(questionType)); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// GetQuestionByText looks a question up by its unique text.
func (r *sqlxQuestionRepository) GetQuestionByText(ctx context.Context, text string) (*domain.Question, error) {
	var q models.Question
	query := `SELECT ` + questionColumns + ` FROM quiz_questions WHERE question = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &q, query, text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by text: %w", err)
	}
	return toDomainQuestion(&q), nil
}

// CreateQuestion inserts the question and fills in its identity column.
func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	m := fromDomainQuestion(question)

	exec := GetExecutor(ctx, r.db)
	insert := `INSERT INTO quiz_questions (topic_id, subtopic, question_type, question, options, correct_answers, explanation, source, created_at)
	           VALUES (:TOPIC_ID, :SUBTOPIC, :QUESTION_TYPE, :QUESTION, :OPTIONS, :CORRECT_ANSWERS, :EXPLANATION, :SOURCE, :CREATED_AT)`
	if _, err := exec.NamedExecContext(ctx, insert, m); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("Question already exists")
		}
		return fmt.Errorf("failed to create question: %w", err)
	}

	if err := exec.GetContext(ctx, &question.ID, `SELECT id FROM quiz_questions WHERE question = :1`, question.Text); err != nil {
		return fmt.Errorf("failed to read question id: %w", err)
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:             m.ID,
		TopicID:        m.TopicID,
		Subtopic:       util.NullStringToString(m.Subtopic),
		Type:           domain.QuestionType(m.QuestionType),
		Text:           m.Question,
		Options:        []string(m.Options),
		CorrectAnswers: []int(m.CorrectAnswers),
		Explanation:    util.NullStringToString(m.Explanation),
		Source:         util.NullStringToString(m.Source),
		CreatedAt:      m.CreatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:             q.ID,
		TopicID:        q.TopicID,
		Subtopic:       util.StringToNullString(q.Subtopic),
		QuestionType:   string(q.Type),
		Question:       q.Text,
		Options:        models.StringSlice(q.Options),
		CorrectAnswers: models.IntSlice(q.CorrectAnswers),
		Explanation:    util.StringToNullString(q.Explanation),
		Source:         util.StringToNullString(q.Source),
		CreatedAt:      q.CreatedAt,
	}
}
