package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/util"
	"topic-quiz/internal/validation"

	"go.uber.org/zap"
)

const historyDateLayout = "2006-01-02"

// AttemptService stores finished quizzes and serves a user's history.
type AttemptService interface {
	SubmitAttempt(ctx context.Context, req *dto.SaveQuizAttemptRequest) error
	GetHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error)
}

type attemptService struct {
	users      domain.UserRepository
	topics     domain.TopicRepository
	questions  domain.QuestionRepository
	attempts   domain.AttemptRepository
	txManager  domain.TransactionManager
	cache      domain.Cache
	historyTTL time.Duration
	validator  *validation.Validator
}

// NewAttemptService creates a new AttemptService. cache may be nil.
func NewAttemptService(
	users domain.UserRepository,
	topics domain.TopicRepository,
	questions domain.QuestionRepository,
	attempts domain.AttemptRepository,
	txManager domain.TransactionManager,
	cache domain.Cache,
	historyTTL time.Duration,
) AttemptService {
	return &attemptService{
		users:      users,
		topics:     topics,
		questions:  questions,
		attempts:   attempts,
		txManager:  txManager,
		cache:      cache,
		historyTTL: historyTTL,
		validator:  validation.NewValidator(),
	}
}

// SubmitAttempt persists the attempt header and every answer whose question
// still exists, all in one transaction.
func (s *attemptService) SubmitAttempt(ctx context.Context, req *dto.SaveQuizAttemptRequest) error {
	if err := s.validator.ValidateSaveQuizAttempt(req); err != nil {
		return err
	}

	topic, err := s.topics.GetTopicByName(ctx, *req.Topic)
	if err != nil {
		return domain.NewInternalError("Failed to look up topic", err)
	}
	if topic == nil {
		return domain.NewNotFoundError("Topic not found")
	}

	user, err := s.users.GetUserByID(ctx, *req.UserID)
	if err != nil {
		return domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return domain.NewNotFoundError("User not found")
	}

	attempt := &domain.QuizAttempt{
		ID:                util.NewULID(),
		UserID:            user.ID,
		TopicID:           topic.ID,
		TopicName:         topic.Name,
		Subtopic:          *req.Subtopic,
		TotalTimeTaken:    *req.TotalTimeTaken,
		Score:             *req.Score,
		CorrectAttempts:   *req.CorrectAttempts,
		IncorrectAttempts: *req.IncorrectAttempts,
		PartialAttempts:   *req.PartialAttempts,
		Unattempted:       *req.Unattempted,
		NegativeMarking:   req.IsNegativeMarking != nil && *req.IsNegativeMarking,
		CreatedAt:         time.Now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attempts.CreateAttempt(txCtx, attempt); err != nil {
			return err
		}
		for i, rec := range req.QuestionAttempts {
			qa, err := s.createQuestionAttempt(txCtx, attempt.ID, i, rec)
			var skip *domain.SkippableReferenceError
			if errors.As(err, &skip) {
				logger.Get().Warn("Skipping answer for unknown question",
					zap.String("attempt_id", attempt.ID),
					zap.String("question_id", skip.ID))
				continue
			}
			if err != nil {
				return err
			}
			attempt.QuestionAttempts = append(attempt.QuestionAttempts, qa)
		}
		return nil
	})
	if err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return err
		}
		logger.Get().Error("Failed to save quiz attempt", zap.Error(err), zap.String("user_id", user.ID))
		return domain.NewInternalError("Failed to save quiz attempt", err)
	}

	s.invalidateHistory(ctx, user.ID)

	if tally := domain.Tally(attempt.QuestionAttempts, attempt.NegativeMarking); !tally.Matches(attempt) {
		logger.Get().Warn("Submitted counters disagree with scored answers",
			zap.String("attempt_id", attempt.ID),
			zap.Int("score", attempt.Score),
			zap.Int("scored", tally.Score),
			zap.Int("correct", attempt.CorrectAttempts),
			zap.Int("scored_correct", tally.Correct),
			zap.Int("partial", attempt.PartialAttempts),
			zap.Int("scored_partial", tally.Partial))
	}

	logger.Get().Info("Quiz attempt saved",
		zap.String("attempt_id", attempt.ID),
		zap.String("user_id", user.ID),
		zap.String("topic", topic.Name),
		zap.Int("answers", len(attempt.QuestionAttempts)))
	return nil
}

func (s *attemptService) createQuestionAttempt(ctx context.Context, attemptID string, position int, rec dto.QuestionAttemptRequest) (*domain.QuestionAttempt, error) {
	question, err := s.questions.GetQuestionByID(ctx, *rec.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, &domain.SkippableReferenceError{Entity: "question", ID: strconv.FormatInt(*rec.QuestionID, 10)}
	}

	qa := &domain.QuestionAttempt{
		ID:              util.NewULID(),
		QuizAttemptID:   attemptID,
		QuestionID:      question.ID,
		Position:        position,
		SubmittedAnswer: rec.AttemptedOptions,
		Question:        question,
	}
	if rec.TimeTaken != nil {
		qa.TimeTaken = *rec.TimeTaken
	}
	if err := s.attempts.CreateQuestionAttempt(ctx, qa); err != nil {
		return nil, err
	}
	return qa, nil
}

// GetHistory returns the user's attempts newest first. The formatted result
// is cached per user until the next submission.
func (s *attemptService) GetHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key := cache.AttemptHistoryKey(userID)
	if cached := s.cachedHistory(ctx, key); cached != nil {
		return cached, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	attempts, err := s.attempts.ListAttemptsByUser(ctx, userID)
	if err != nil {
		logger.Get().Error("Failed to load quiz history", zap.Error(err), zap.String("user_id", userID))
		return nil, domain.NewInternalError("Failed to load quiz history", err)
	}

	resp := &dto.QuizHistoryResponse{
		Status:  "success",
		Quizzes: make([]dto.QuizHistoryItem, 0, len(attempts)),
	}
	for _, a := range attempts {
		resp.Quizzes = append(resp.Quizzes, toHistoryItem(a))
	}

	s.storeHistory(ctx, key, resp)
	return resp, nil
}

func (s *attemptService) cachedHistory(ctx context.Context, key string) *dto.QuizHistoryResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("History cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}
	var resp dto.QuizHistoryResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		logger.Get().Warn("Discarding malformed cached history", zap.Error(err), zap.String("key", key))
		return nil
	}
	logger.Get().Debug("History cache hit", zap.String("key", key))
	return &resp
}

func (s *attemptService) storeHistory(ctx context.Context, key string, resp *dto.QuizHistoryResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to marshal history for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.historyTTL); err != nil {
		logger.Get().Warn("History cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *attemptService) invalidateHistory(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.AttemptHistoryKey(userID)); err != nil {
		logger.Get().Warn("Failed to invalidate history cache", zap.Error(err), zap.String("user_id", userID))
	}
}

func toHistoryItem(a *domain.QuizAttempt) dto.QuizHistoryItem {
	item := dto.QuizHistoryItem{
		ID:                 a.ID,
		Topic:              a.TopicName,
		Subtopic:           a.Subtopic,
		Date:               a.CreatedAt.Format(historyDateLayout),
		Percentage:         a.ScorePercentage(),
		TotalPossibleScore: a.TotalPossibleScore(),
		Score:              a.Score,
		TimeSpent:          a.TotalTimeTaken,
		NegativeMarking:    a.NegativeMarking,
		Questions:          make([]dto.QuestionHistoryItem, 0, len(a.QuestionAttempts)),
	}
	if qt := a.QuestionType(); qt != nil {
		s := string(*qt)
		item.QuestionType = &s
	}

	for _, qa := range a.QuestionAttempts {
		if qa.Question == nil {
			continue
		}
		ev := a.Evaluate(qa)
		item.Questions = append(item.Questions, dto.QuestionHistoryItem{
			QuestionID:       qa.QuestionID,
			Question:         qa.Question.Text,
			Options:          nonNil(qa.Question.Options),
			CorrectAnswers:   nonNil(qa.Question.CorrectAnswers),
			SelectedAnswers:  nonNil(qa.SubmittedAnswer),
			IsCorrect:        ev.IsCorrect,
			PartiallyCorrect: ev.IsPartial,
			TimeTaken:        qa.TimeTaken,
			Score:            ev.Score,
			Explanation:      qa.Question.Explanation,
		})
	}
	return item
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
