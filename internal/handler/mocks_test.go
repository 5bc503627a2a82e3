package handler_test

import (
	"context"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
)

type mockAttemptService struct {
	SubmitAttemptFunc func(ctx context.Context, req *dto.SaveQuizAttemptRequest) error
	GetHistoryFunc    func(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error)
}

func (m *mockAttemptService) SubmitAttempt(ctx context.Context, req *dto.SaveQuizAttemptRequest) error {
	return m.SubmitAttemptFunc(ctx, req)
}

func (m *mockAttemptService) GetHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error) {
	return m.GetHistoryFunc(ctx, userID)
}

type mockAuthService struct {
	SignupFunc       func(ctx context.Context, req *dto.SignupRequest) (*domain.User, error)
	LoginFunc        func(ctx context.Context, req *dto.LoginRequest) (*domain.User, string, string, error)
	ValidateJWTFunc  func(ctx context.Context, token string) (*dto.AuthClaims, error)
	RefreshTokenFunc func(ctx context.Context, token string) (string, string, error)
	GetUserFunc      func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *mockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, error) {
	return m.SignupFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, string, string, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthService) ValidateJWT(ctx context.Context, token string) (*dto.AuthClaims, error) {
	return m.ValidateJWTFunc(ctx, token)
}

func (m *mockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	return "", nil
}

func (m *mockAuthService) RefreshToken(ctx context.Context, token string) (string, string, error) {
	return m.RefreshTokenFunc(ctx, token)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return m.GetUserFunc(ctx, userID)
}

type mockContentService struct {
	SearchFunc       func(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GenerateQuizFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
}

func (m *mockContentService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	return m.SearchFunc(ctx, req)
}

func (m *mockContentService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	return m.GenerateQuizFunc(ctx, req)
}

type mockResourceService struct {
	VideosFunc        func(ctx context.Context, req *dto.TopicResourceRequest) (*dto.VideosResponse, error)
	ArticlesFunc      func(ctx context.Context, req *dto.TopicResourceRequest) (*dto.ArticlesResponse, error)
	DocumentationFunc func(ctx context.Context, req *dto.TopicResourceRequest) (*dto.DocumentationResponse, error)
}

func (m *mockResourceService) Videos(ctx context.Context, req *dto.TopicResourceRequest) (*dto.VideosResponse, error) {
	return m.VideosFunc(ctx, req)
}

func (m *mockResourceService) Articles(ctx context.Context, req *dto.TopicResourceRequest) (*dto.ArticlesResponse, error) {
	return m.ArticlesFunc(ctx, req)
}

func (m *mockResourceService) Documentation(ctx context.Context, req *dto.TopicResourceRequest) (*dto.DocumentationResponse, error) {
	return m.DocumentationFunc(ctx, req)
}
