package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"topic-quiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	attemptHeaderColumns = []string{
		"ID", "USER_ID", "TOPIC_ID", "SUBTOPIC", "TOTAL_TIME_TAKEN", "SCORE",
		"CORRECT_ATTEMPTS", "INCORRECT_ATTEMPTS", "PARTIAL_ATTEMPTS", "UNATTEMPTED",
		"IS_NEGATIVE_MARKING", "CREATED_AT", "TOPIC_NAME",
	}
	questionAttemptColumns = []string{
		"ID", "QUIZ_ATTEMPT_ID", "QUESTION_ID", "POSITION", "TIME_TAKEN", "ATTEMPTED_OPTIONS",
		"Q_QUESTION_TYPE", "Q_QUESTION", "Q_OPTIONS", "Q_CORRECT_ANSWERS", "Q_EXPLANATION",
		"Q_TOPIC_ID", "Q_SUBTOPIC",
	}
)

func TestAttemptRepository_CreateAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)
	createdAt := time.Now()

	attempt := &domain.QuizAttempt{
		ID:                "01J0ATTEMPT",
		UserID:            "01J0USER",
		TopicID:           7,
		Subtopic:          "Channels",
		TotalTimeTaken:    95,
		Score:             -1,
		CorrectAttempts:   1,
		IncorrectAttempts: 2,
		NegativeMarking:   true,
		CreatedAt:         createdAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quiz_attempts (id, user_id, topic_id, subtopic")).
		WithArgs("01J0ATTEMPT", "01J0USER", int64(7), "Channels", int64(95), int64(-1),
			int64(1), int64(2), int64(0), int64(0), int64(1), createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateAttempt(context.Background(), attempt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_CreateQuestionAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO question_attempts")).
		WithArgs("01J0QA", "01J0ATTEMPT", int64(3), int64(0), int64(12), "[0,2]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateQuestionAttempt(context.Background(), &domain.QuestionAttempt{
		ID:              "01J0QA",
		QuizAttemptID:   "01J0ATTEMPT",
		QuestionID:      3,
		Position:        0,
		TimeTaken:       12,
		SubmittedAnswer: []int{0, 2},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_CreateQuestionAttempt_Unattempted(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO question_attempts")).
		WithArgs("01J0QA", "01J0ATTEMPT", int64(3), int64(1), int64(0), "[]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateQuestionAttempt(context.Background(), &domain.QuestionAttempt{
		ID: "01J0QA", QuizAttemptID: "01J0ATTEMPT", QuestionID: 3, Position: 1,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListAttemptsByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM quiz_attempts a JOIN topics t")).
		WithArgs("01J0USER").
		WillReturnRows(sqlmock.NewRows(attemptHeaderColumns).
			AddRow("A2", "01J0USER", 7, "Channels", 60, 5, 1, 0, 1, 0, 1, newer, "Go").
			AddRow("A1", "01J0USER", 7, nil, 30, 0, 0, 0, 0, 2, 0, older, "Go"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM question_attempts qa JOIN quiz_attempts a")).
		WithArgs("01J0USER").
		WillReturnRows(sqlmock.NewRows(questionAttemptColumns).
			AddRow("QA1", "A2", 11, 0, 20, "[1]", "mcq", "Q1?", `["a","b"]`, "[1]", "because", 7, "Channels").
			AddRow("QA2", "A2", 12, 1, 40, "[0]", "multiple-correct", "Q2?", `["a","b","c"]`, "[0,2]", nil, 7, "Channels"))

	attempts, err := repo.ListAttemptsByUser(context.Background(), "01J0USER")

	require.NoError(t, err)
	require.Len(t, attempts, 2)

	first := attempts[0]
	assert.Equal(t, "A2", first.ID)
	assert.Equal(t, "Go", first.TopicName)
	assert.True(t, first.NegativeMarking)
	require.Len(t, first.QuestionAttempts, 2)
	assert.Equal(t, "QA1", first.QuestionAttempts[0].ID)
	assert.Equal(t, domain.QuestionTypeSingleChoice, first.QuestionAttempts[0].Question.Type)
	assert.Equal(t, []int{0, 2}, first.QuestionAttempts[1].Question.CorrectAnswers)
	assert.Equal(t, 1, first.Evaluate(first.QuestionAttempts[1]).Score)

	second := attempts[1]
	assert.Equal(t, "A1", second.ID)
	assert.Equal(t, "", second.Subtopic)
	assert.False(t, second.NegativeMarking)
	assert.Empty(t, second.QuestionAttempts)
	assert.Nil(t, second.QuestionType())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListAttemptsByUser_NoAttempts(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)

	mock.ExpectQuery("FROM quiz_attempts a").
		WithArgs("01J0USER").
		WillReturnRows(sqlmock.NewRows(attemptHeaderColumns))

	attempts, err := repo.ListAttemptsByUser(context.Background(), "01J0USER")

	require.NoError(t, err)
	assert.NotNil(t, attempts)
	assert.Empty(t, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListAttemptsByUser_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAttemptRepository(db)

	mock.ExpectQuery("FROM quiz_attempts a").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListAttemptsByUser(context.Background(), "01J0USER")

	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
