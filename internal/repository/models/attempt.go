package models

import (
	"database/sql"
	"time"
)

// QuizAttempt maps the QUIZ_ATTEMPTS table.
type QuizAttempt struct {
	ID                string         `db:"ID"`
	UserID            string         `db:"USER_ID"`
	TopicID           int64          `db:"TOPIC_ID"`
	Subtopic          sql.NullString `db:"SUBTOPIC"`
	TotalTimeTaken    int            `db:"TOTAL_TIME_TAKEN"`
	Score             int            `db:"SCORE"`
	CorrectAttempts   int            `db:"CORRECT_ATTEMPTS"`
	IncorrectAttempts int            `db:"INCORRECT_ATTEMPTS"`
	PartialAttempts   int            `db:"PARTIAL_ATTEMPTS"`
	Unattempted       int            `db:"UNATTEMPTED"`
	IsNegativeMarking int            `db:"IS_NEGATIVE_MARKING"` // NUMBER(1)
	CreatedAt         time.Time      `db:"CREATED_AT"`
}

// QuizAttemptRow is a QUIZ_ATTEMPTS row joined with its topic name.
type QuizAttemptRow struct {
	QuizAttempt
	TopicName string `db:"TOPIC_NAME"`
}

// QuestionAttempt maps the QUESTION_ATTEMPTS table.
type QuestionAttempt struct {
	ID               string   `db:"ID"`
	QuizAttemptID    string   `db:"QUIZ_ATTEMPT_ID"`
	QuestionID       int64    `db:"QUESTION_ID"`
	Position         int      `db:"POSITION"`
	TimeTaken        int      `db:"TIME_TAKEN"`
	AttemptedOptions IntSlice `db:"ATTEMPTED_OPTIONS"`
}

// QuestionAttemptRow is a QUESTION_ATTEMPTS row joined with the answered
// question. Question columns are prefixed with Q_.
type QuestionAttemptRow struct {
	QuestionAttempt
	QuestionType   string         `db:"Q_QUESTION_TYPE"`
	QuestionText   string         `db:"Q_QUESTION"`
	Options        StringSlice    `db:"Q_OPTIONS"`
	CorrectAnswers IntSlice       `db:"Q_CORRECT_ANSWERS"`
	Explanation    sql.NullString `db:"Q_EXPLANATION"`
	TopicID        int64          `db:"Q_TOPIC_ID"`
	Subtopic       sql.NullString `db:"Q_SUBTOPIC"`
}
