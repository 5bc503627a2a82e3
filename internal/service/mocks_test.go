package service

import (
	"context"

	"topic-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockTopicRepository ---
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) GetTopicByName(ctx context.Context, name string) (*domain.Topic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockTopicRepository) UpdateTopicContent(ctx context.Context, id int64, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context, topicID int64, subtopic string, questionType domain.QuestionType) ([]*domain.Question, error) {
	args := m.Called(ctx, topicID, subtopic, questionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByText(ctx context.Context, text string) (*domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) CreateQuestionAttempt(ctx context.Context, qa *domain.QuestionAttempt) error {
	args := m.Called(ctx, qa)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListAttemptsByUser(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizAttempt), args.Error(1)
}

// --- MockResourceRepository ---
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) ListVideos(ctx context.Context, topicID int64, subtopic string) ([]domain.Video, error) {
	args := m.Called(ctx, topicID, subtopic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}

func (m *MockResourceRepository) SaveVideos(ctx context.Context, topicID int64, subtopic string, videos []domain.Video) error {
	args := m.Called(ctx, topicID, subtopic, videos)
	return args.Error(0)
}

func (m *MockResourceRepository) ListArticles(ctx context.Context, topicID int64, subtopic string) ([]domain.Article, error) {
	args := m.Called(ctx, topicID, subtopic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockResourceRepository) SaveArticles(ctx context.Context, topicID int64, subtopic string, articles []domain.Article) error {
	args := m.Called(ctx, topicID, subtopic, articles)
	return args.Error(0)
}

func (m *MockResourceRepository) ListDocumentation(ctx context.Context, topicID int64, subtopic string) ([]domain.Documentation, error) {
	args := m.Called(ctx, topicID, subtopic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Documentation), args.Error(1)
}

func (m *MockResourceRepository) SaveDocumentation(ctx context.Context, topicID int64, subtopic string, docs []domain.Documentation) error {
	args := m.Called(ctx, topicID, subtopic, docs)
	return args.Error(0)
}

// --- MockTransactionManager ---
// Runs fn directly and records whether it was called.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// --- MockVideoSearcher ---
type MockVideoSearcher struct {
	mock.Mock
}

func (m *MockVideoSearcher) SearchVideos(ctx context.Context, query string, limit int) ([]domain.Video, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}
