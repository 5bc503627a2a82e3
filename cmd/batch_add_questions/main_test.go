package main

import (
	"context"
	"errors"
	"sync"
	"testing"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContentService struct {
	mu        sync.Mutex
	searched  []string
	requested []dto.GenerateQuizRequest
	failType  string
}

func (f *fakeContentService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, req.SearchQuery)
	return &dto.SearchResponse{Result: "overview"}, nil
}

func (f *fakeContentService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, *req)
	if req.QuestionType == f.failType {
		return nil, domain.NewLLMServiceError(errors.New("quota exceeded"))
	}
	quiz := make([]dto.QuizQuestionResponse, req.NumQuestions)
	return &dto.GenerateQuizResponse{Quiz: dto.QuizPayload{Quiz: quiz}}, nil
}

func TestAddQuestions(t *testing.T) {
	svc := &fakeContentService{}
	opts := batchOptions{subtopic: "Basics", types: []string{"mcq", " true-false"}, count: 3, concurrency: 2}

	total, err := addQuestions(context.Background(), svc, []string{"Go", "Rust"}, opts, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, []string{"Go", "Rust"}, svc.searched)
	require.Len(t, svc.requested, 4)
	for _, req := range svc.requested {
		assert.Equal(t, "Basics", req.Subtopic)
		assert.Contains(t, []string{"mcq", "true-false"}, req.QuestionType)
	}
}

func TestAddQuestions_GenerationFails(t *testing.T) {
	svc := &fakeContentService{failType: "multiple-correct"}
	opts := batchOptions{types: []string{"mcq", "multiple-correct"}, count: 2, concurrency: 1}

	_, err := addQuestions(context.Background(), svc, []string{"Go"}, opts, zap.NewNop())

	assert.True(t, domain.IsErrorCode(err, domain.ErrLLMService))
	assert.ErrorContains(t, err, "multiple-correct")
}
