package repository

import (
	"context"
	"fmt"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/repository/models"
	"topic-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxAttemptRepository struct {
	db *sqlx.DB
}

func NewAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (id, user_id, topic_id, subtopic, total_time_taken, score,
	              correct_attempts, incorrect_attempts, partial_attempts, unattempted, is_negative_marking, created_at)
	          VALUES (:ID, :USER_ID, :TOPIC_ID, :SUBTOPIC, :TOTAL_TIME_TAKEN, :SCORE,
	              :CORRECT_ATTEMPTS, :INCORRECT_ATTEMPTS, :PARTIAL_ATTEMPTS, :UNATTEMPTED, :IS_NEGATIVE_MARKING, :CREATED_AT)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainAttempt(attempt)); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

func (r *sqlxAttemptRepository) CreateQuestionAttempt(ctx context.Context, qa *domain.QuestionAttempt) error {
	query := `INSERT INTO question_attempts (id, quiz_attempt_id, question_id, position, time_taken, attempted_options)
	          VALUES (:ID, :QUIZ_ATTEMPT_ID, :QUESTION_ID, :POSITION, :TIME_TAKEN, :ATTEMPTED_OPTIONS)`

	m := &models.QuestionAttempt{
		ID:               qa.ID,
		QuizAttemptID:    qa.QuizAttemptID,
		QuestionID:       qa.QuestionID,
		Position:         qa.Position,
		TimeTaken:        qa.TimeTaken,
		AttemptedOptions: models.IntSlice(qa.SubmittedAnswer),
	}
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create question attempt: %w", err)
	}
	return nil
}

// ListAttemptsByUser loads the headers in one query and every child row in a
// second one, then stitches them together in memory.
func (r *sqlxAttemptRepository) ListAttemptsByUser(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)

	attemptsQuery := `SELECT a.id, a.user_id, a.topic_id, a.subtopic, a.total_time_taken, a.score,
	                         a.correct_attempts, a.incorrect_attempts, a.partial_attempts, a.unattempted,
	                         a.is_negative_marking, a.created_at, t.name AS topic_name
	                  FROM quiz_attempts a
	                  JOIN topics t ON t.id = a.topic_id
	                  WHERE a.user_id = :1
	                  ORDER BY a.created_at DESC, a.id DESC`

	var headers []models.QuizAttemptRow
	if err := exec.SelectContext(ctx, &headers, attemptsQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	if len(headers) == 0 {
		return []*domain.QuizAttempt{}, nil
	}

	childrenQuery := `SELECT qa.id, qa.quiz_attempt_id, qa.question_id, qa.position, qa.time_taken, qa.attempted_options,
	                         q.question_type AS q_question_type, q.question AS q_question, q.options AS q_options,
	                         q.correct_answers AS q_correct_answers, q.explanation AS q_explanation,
	                         q.topic_id AS q_topic_id, q.subtopic AS q_subtopic
	                  FROM question_attempts qa
	                  JOIN quiz_attempts a ON a.id = qa.quiz_attempt_id
	                  JOIN quiz_questions q ON q.id = qa.question_id
	                  WHERE a.user_id = :1
	                  ORDER BY qa.quiz_attempt_id, qa.position`

	var children []models.QuestionAttemptRow
	if err := exec.SelectContext(ctx, &children, childrenQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to list question attempts: %w", err)
	}

	byAttempt := make(map[string][]*domain.QuestionAttempt, len(headers))
	for i := range children {
		qa := toDomainQuestionAttempt(&children[i])
		byAttempt[qa.QuizAttemptID] = append(byAttempt[qa.QuizAttemptID], qa)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(headers))
	for i := range headers {
		a := toDomainAttempt(&headers[i])
		a.QuestionAttempts = byAttempt[a.ID]
		if a.QuestionAttempts == nil {
			a.QuestionAttempts = []*domain.QuestionAttempt{}
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	return &models.QuizAttempt{
		ID:                a.ID,
		UserID:            a.UserID,
		TopicID:           a.TopicID,
		Subtopic:          util.StringToNullString(a.Subtopic),
		TotalTimeTaken:    a.TotalTimeTaken,
		Score:             a.Score,
		CorrectAttempts:   a.CorrectAttempts,
		IncorrectAttempts: a.IncorrectAttempts,
		PartialAttempts:   a.PartialAttempts,
		Unattempted:       a.Unattempted,
		IsNegativeMarking: util.BoolToInt(a.NegativeMarking),
		CreatedAt:         a.CreatedAt,
	}
}

func toDomainAttempt(m *models.QuizAttemptRow) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:                m.ID,
		UserID:            m.UserID,
		TopicID:           m.TopicID,
		TopicName:         m.TopicName,
		Subtopic:          util.NullStringToString(m.Subtopic),
		TotalTimeTaken:    m.TotalTimeTaken,
		Score:             m.Score,
		CorrectAttempts:   m.CorrectAttempts,
		IncorrectAttempts: m.IncorrectAttempts,
		PartialAttempts:   m.PartialAttempts,
		Unattempted:       m.Unattempted,
		NegativeMarking:   util.IntToBool(m.IsNegativeMarking),
		CreatedAt:         m.CreatedAt,
	}
}

func toDomainQuestionAttempt(m *models.QuestionAttemptRow) *domain.QuestionAttempt {
	return &domain.QuestionAttempt{
		ID:              m.ID,
		QuizAttemptID:   m.QuizAttemptID,
		QuestionID:      m.QuestionID,
		Position:        m.Position,
		TimeTaken:       m.TimeTaken,
		SubmittedAnswer: []int(m.AttemptedOptions),
		Question: &domain.Question{
			ID:             m.QuestionID,
			TopicID:        m.TopicID,
			Subtopic:       util.NullStringToString(m.Subtopic),
			Type:           domain.QuestionType(m.QuestionType),
			Text:           m.QuestionText,
			Options:        []string(m.Options),
			CorrectAnswers: []int(m.CorrectAnswers),
			Explanation:    util.NullStringToString(m.Explanation),
		},
	}
}
