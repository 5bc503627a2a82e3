package domain

import "context"

// TransactionManager runs fn inside a single database transaction. The
// context passed to fn carries the transaction; repositories pick it up.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository returns (nil, nil) from lookups when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// TopicRepository returns (nil, nil) from GetTopicByName when no topic matches.
type TopicRepository interface {
	GetTopicByName(ctx context.Context, name string) (*Topic, error)
	CreateTopic(ctx context.Context, topic *Topic) error
	UpdateTopicContent(ctx context.Context, id int64, content string) error
}

type QuestionRepository interface {
	// GetQuestionByID returns (nil, nil) when the question does not exist.
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	ListQuestions(ctx context.Context, topicID int64, subtopic string, questionType QuestionType) ([]*Question, error)
	// GetQuestionByText returns (nil, nil) when no question has this text.
	GetQuestionByText(ctx context.Context, text string) (*Question, error)
	CreateQuestion(ctx context.Context, question *Question) error
}

type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	CreateQuestionAttempt(ctx context.Context, qa *QuestionAttempt) error
	// ListAttemptsByUser returns the user's attempts newest first, each with
	// its question attempts (and their questions) in submission order.
	ListAttemptsByUser(ctx context.Context, userID string) ([]*QuizAttempt, error)
}

type ResourceRepository interface {
	ListVideos(ctx context.Context, topicID int64, subtopic string) ([]Video, error)
	SaveVideos(ctx context.Context, topicID int64, subtopic string, videos []Video) error
	ListArticles(ctx context.Context, topicID int64, subtopic string) ([]Article, error)
	SaveArticles(ctx context.Context, topicID int64, subtopic string, articles []Article) error
	ListDocumentation(ctx context.Context, topicID int64, subtopic string) ([]Documentation, error)
	SaveDocumentation(ctx context.Context, topicID int64, subtopic string, docs []Documentation) error
}
