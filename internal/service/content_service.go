package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"topic-quiz/internal/adapter/llm"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const questionSourceLLM = "gemini"

// ContentService serves topic overviews and quizzes, generating them with the
// LLM when nothing suitable is stored yet.
type ContentService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
}

// ContentOptions tunes ContentService.
type ContentOptions struct {
	// ReuseProbability is the chance of serving stored questions.
	ReuseProbability float64
	CacheTTL         time.Duration
}

type contentService struct {
	topics    domain.TopicRepository
	questions domain.QuestionRepository
	txManager domain.TransactionManager
	generator domain.TextGenerator
	cache     jsonCache
	opts      ContentOptions
	validator *validation.Validator
	group     singleflight.Group

	random  func() float64
	shuffle func(n int, swap func(i, j int))
}

func NewContentService(
	topics domain.TopicRepository,
	questions domain.QuestionRepository,
	txManager domain.TransactionManager,
	generator domain.TextGenerator,
	c domain.Cache,
	opts ContentOptions,
) ContentService {
	return &contentService{
		topics:    topics,
		questions: questions,
		txManager: txManager,
		generator: generator,
		cache:     jsonCache{cache: c, ttl: opts.CacheTTL},
		opts:      opts,
		validator: validation.NewValidator(),
		random:    rand.Float64,
		shuffle:   rand.Shuffle,
	}
}

// Search returns the stored overview of a topic. Unknown topics are generated
// and created; concurrent searches for one topic share a single generation.
func (s *contentService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	if err := s.validator.ValidateSearch(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.SearchQuery)
	key := cache.ContentKey("search", name, "")

	var resp dto.SearchResponse
	if s.cache.get(ctx, key, &resp) {
		return &resp, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.topicContent(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared topic generation", zap.String("topic", name))
	}

	resp = dto.SearchResponse{Result: v.(string)}
	s.cache.set(ctx, key, &resp)
	return &resp, nil
}

func (s *contentService) topicContent(ctx context.Context, name string) (string, error) {
	topic, err := s.topics.GetTopicByName(ctx, name)
	if err != nil {
		return "", domain.NewInternalError("Failed to look up topic", err)
	}
	if topic != nil && topic.Content != "" {
		return topic.Content, nil
	}

	opts := domain.DefaultGenerateOptions()
	opts.JSON = true
	content, err := s.generator.Generate(ctx, topicOverviewPrompt(name), opts)
	if err != nil {
		logger.Get().Error("Topic generation failed", zap.Error(err), zap.String("topic", name))
		return "", err
	}

	if topic != nil {
		if err := s.topics.UpdateTopicContent(ctx, topic.ID, content); err != nil {
			return "", domain.NewInternalError("Failed to store topic content", err)
		}
		return content, nil
	}

	topic = &domain.Topic{Name: name, Content: content}
	if err := s.topics.CreateTopic(ctx, topic); err != nil {
		if domain.IsErrorCode(err, domain.ErrConflict) {
			// created by another instance in the meantime
			if existing, getErr := s.topics.GetTopicByName(ctx, name); getErr == nil && existing != nil && existing.Content != "" {
				return existing.Content, nil
			}
			return content, nil
		}
		return "", domain.NewInternalError("Failed to create topic", err)
	}
	logger.Get().Info("Topic created from search", zap.String("topic", name), zap.Int64("topic_id", topic.ID))
	return content, nil
}

type generatedQuiz struct {
	Quiz []generatedQuestion `json:"quiz"`
}

type generatedQuestion struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
}

// GenerateQuiz serves a random sample of stored questions with probability
// ReuseProbability when enough exist, otherwise asks the LLM for a fresh set.
func (s *contentService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if err := s.validator.ValidateGenerateQuiz(req); err != nil {
		return nil, err
	}

	topic, err := s.topics.GetTopicByName(ctx, strings.TrimSpace(req.Topic))
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up topic", err)
	}
	if topic == nil {
		return nil, domain.NewNotFoundError("Topic not found")
	}
	qt := domain.QuestionType(req.QuestionType)

	if s.random() < s.opts.ReuseProbability {
		stored, err := s.questions.ListQuestions(ctx, topic.ID, req.Subtopic, qt)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load questions", err)
		}
		if len(stored) >= req.NumQuestions {
			s.shuffle(len(stored), func(i, j int) { stored[i], stored[j] = stored[j], stored[i] })
			return toQuizResponse(stored[:req.NumQuestions]), nil
		}
		logger.Get().Info("Not enough stored questions, generating",
			zap.String("topic", topic.Name),
			zap.Int("stored", len(stored)),
			zap.Int("requested", req.NumQuestions))
	}

	opts := domain.DefaultGenerateOptions()
	opts.JSON = true
	raw, err := s.generator.Generate(ctx, quizPrompt(topic.Name, req.Subtopic, qt, req.NumQuestions), opts)
	if err != nil {
		return nil, err
	}
	var generated generatedQuiz
	if err := llm.DecodeJSON(raw, &generated); err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var questions []*domain.Question
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, g := range generated.Quiz {
			q, err := s.storeGenerated(txCtx, topic, req.Subtopic, qt, g)
			if err != nil {
				return err
			}
			if q != nil {
				questions = append(questions, q)
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to store generated questions", err)
	}

	logger.Get().Info("Quiz generated",
		zap.String("topic", topic.Name),
		zap.String("subtopic", req.Subtopic),
		zap.String("type", string(qt)),
		zap.Int("generated", len(generated.Quiz)),
		zap.Int("served", len(questions)))
	return toQuizResponse(questions), nil
}

// storeGenerated returns the stored question with the same text if there is
// one, creates it otherwise, and returns nil for malformed questions.
func (s *contentService) storeGenerated(ctx context.Context, topic *domain.Topic, subtopic string, qt domain.QuestionType, g generatedQuestion) (*domain.Question, error) {
	q := &domain.Question{
		TopicID:        topic.ID,
		Subtopic:       subtopic,
		Type:           qt,
		Text:           strings.TrimSpace(g.Question),
		Options:        g.Options,
		CorrectAnswers: g.CorrectAnswers,
		Explanation:    g.Explanation,
		Source:         questionSourceLLM,
	}
	if err := q.Validate(); err != nil {
		logger.Get().Warn("Skipping malformed generated question", zap.Error(err), zap.String("question", g.Question))
		return nil, nil
	}

	existing, err := s.questions.GetQuestionByText(ctx, q.Text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		if domain.IsErrorCode(err, domain.ErrConflict) {
			return s.questions.GetQuestionByText(ctx, q.Text)
		}
		return nil, err
	}
	return q, nil
}

func toQuizResponse(questions []*domain.Question) *dto.GenerateQuizResponse {
	items := make([]dto.QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, dto.QuizQuestionResponse{
			ID:             q.ID,
			Type:           string(q.Type),
			Question:       q.Text,
			Options:        nonNil(q.Options),
			CorrectAnswers: nonNil(q.CorrectAnswers),
			Explanation:    q.Explanation,
		})
	}
	return &dto.GenerateQuizResponse{Quiz: dto.QuizPayload{Quiz: items}}
}

func quizPrompt(topic, subtopic string, qt domain.QuestionType, n int) string {
	subject := "the topic of " + topic
	if subtopic != "" {
		subject = fmt.Sprintf("the subtopic of %s within the broader topic of %s", subtopic, topic)
	}
	return fmt.Sprintf(`Create a quiz on %s.
The quiz must consist of %d questions, all of type '%s'.
mcq and multiple-correct questions have exactly 4 options, true-false questions have exactly 2 options.
correct_answers holds zero-based indices into options.
For each question provide:
    type: string;
    question: string;
    options: string[];
    correct_answers: number[];
    explanation: string;
Return the quiz as a JSON object with a "quiz" key containing the array of questions.`, subject, n, qt)
}

func topicOverviewPrompt(topic string) string {
	return fmt.Sprintf(`Gather learning material about the topic %[1]q for a beginner.
Output a single valid JSON object of the form {"topic": %[1]q, %[1]q: {...}} where the inner object has these keys:
"Short Description": {"Description": 100-120 friendly words, key points in **bold**},
"Need to Learn %[1]s": {"Description": at most 50 words, "Benefit 1".."Benefit 3": {"heading": 1-2 words, "description": 20-30 words}},
"Resource Tab Suggestions": {"Description": 3 of 'Videos', 'Articles', 'Courses', 'Books', 'Documentation', 'Cheat Sheets', 'Practice Problems'},
"SubTopics": {"Description": {"subtopics": at least 6 of {"name", "description", "difficulty", "timeToComplete", "whyItMatters", "commonMistakes": [3 strings], "resourceTabs": []}}},
"Road Map to Learn %[1]s": {"Description": {"prerequisites": [at least 3], "levels": [{"name", "description", "topics": [strings]}]}},
"Key Takeaways", "FAQs" and "Related Topics" sections with at least 3 entries each.`, topic)
}
