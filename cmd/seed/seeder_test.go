package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"topic-quiz/cmd/seed/internal/seedmodels"
	"topic-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTopics struct{ mock.Mock }

func (m *mockTopics) GetTopicByName(ctx context.Context, name string) (*domain.Topic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *mockTopics) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	return m.Called(ctx, topic).Error(0)
}

func (m *mockTopics) UpdateTopicContent(ctx context.Context, id int64, content string) error {
	return m.Called(ctx, id, content).Error(0)
}

type mockQuestions struct{ mock.Mock }

func (m *mockQuestions) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *mockQuestions) ListQuestions(ctx context.Context, topicID int64, subtopic string, questionType domain.QuestionType) ([]*domain.Question, error) {
	args := m.Called(ctx, topicID, subtopic, questionType)
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *mockQuestions) GetQuestionByText(ctx context.Context, text string) (*domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *mockQuestions) CreateQuestion(ctx context.Context, q *domain.Question) error {
	return m.Called(ctx, q).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var goSeed = seedmodels.SeedTopic{
	Name:    "Go",
	Content: "Go is a statically typed language.",
	Questions: []seedmodels.SeedQuestion{
		{Type: "mcq", Question: "Which keyword starts a goroutine?", Options: []string{"go", "async", "spawn", "run"}, CorrectAnswers: []int{0}},
		{Type: "multiple-correct", Subtopic: "Channels", Question: "Which are channel operations?", Options: []string{"send", "receive", "fork", "close"}, CorrectAnswers: []int{0, 1, 3}},
		{Type: "mcq", Question: "Broken", Options: []string{"only"}, CorrectAnswers: []int{0}},
		{Type: "true-false", Question: "Already stored", Options: []string{"True", "False"}, CorrectAnswers: []int{1}},
	},
}

func TestSeeder_SeedTopic(t *testing.T) {
	ctx := context.Background()
	topics := new(mockTopics)
	questions := new(mockQuestions)
	s := &seeder{topics: topics, questions: questions, txManager: passthroughTx{}, log: zap.NewNop()}

	topics.On("GetTopicByName", ctx, "Go").Return(nil, nil)
	topics.On("CreateTopic", ctx, mock.MatchedBy(func(tp *domain.Topic) bool { return tp.Content == goSeed.Content })).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Topic).ID = 3 }).
		Return(nil)
	questions.On("GetQuestionByText", ctx, "Which keyword starts a goroutine?").Return(nil, nil)
	questions.On("GetQuestionByText", ctx, "Which are channel operations?").Return(nil, nil)
	questions.On("GetQuestionByText", ctx, "Already stored").Return(&domain.Question{ID: 9}, nil)
	questions.On("CreateQuestion", ctx, mock.MatchedBy(func(q *domain.Question) bool {
		return q.TopicID == 3 && q.Source == questionSourceSeed
	})).Return(nil)

	created, err := s.seedTopic(ctx, goSeed)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	questions.AssertNumberOfCalls(t, "CreateQuestion", 2)
	questions.AssertNotCalled(t, "GetQuestionByText", ctx, "Broken")
}

func TestSeeder_SeedTopic_ExistingTopicAndFailure(t *testing.T) {
	ctx := context.Background()
	topics := new(mockTopics)
	questions := new(mockQuestions)
	s := &seeder{topics: topics, questions: questions, txManager: passthroughTx{}, log: zap.NewNop()}

	topics.On("GetTopicByName", ctx, "Go").Return(&domain.Topic{ID: 5, Name: "Go"}, nil)
	questions.On("GetQuestionByText", ctx, mock.Anything).Return(nil, nil)
	questions.On("CreateQuestion", ctx, mock.Anything).Return(errors.New("ORA-03113"))

	created, err := s.seedTopic(ctx, goSeed)

	assert.ErrorContains(t, err, "ORA-03113")
	assert.Zero(t, created)
	topics.AssertNotCalled(t, "CreateTopic", mock.Anything, mock.Anything)
}

func TestSeeder_SeedTopic_MissingName(t *testing.T) {
	s := &seeder{txManager: passthroughTx{}, log: zap.NewNop()}

	_, err := s.seedTopic(context.Background(), seedmodels.SeedTopic{Name: "  "})

	assert.True(t, domain.IsErrorCode(err, domain.ErrValidation))
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"topic_name":"Go","questions":[{"type":"mcq","question":"q","options":["a","b"],"correct_answers":[1]}]}]`), 0o600))

	topics, err := loadSeedFile(path)

	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, []int{1}, topics[0].Questions[0].CorrectAnswers)

	_, err = loadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
