package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"topic-quiz/internal/adapter/llm"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/validation"

	"go.uber.org/zap"
)

const (
	videosPerTopic    = 2
	generatedPerTopic = 2
)

// ResourceService finds learning resources for a topic. Results are stored
// per (topic, subtopic) and served from storage on later requests. Unknown
// topics are created on the fly.
type ResourceService interface {
	Videos(ctx context.Context, req *dto.TopicResourceRequest) (*dto.VideosResponse, error)
	Articles(ctx context.Context, req *dto.TopicResourceRequest) (*dto.ArticlesResponse, error)
	Documentation(ctx context.Context, req *dto.TopicResourceRequest) (*dto.DocumentationResponse, error)
}

type resourceService struct {
	topics    domain.TopicRepository
	resources domain.ResourceRepository
	videos    domain.VideoSearcher
	generator domain.TextGenerator
	cache     jsonCache
	validator *validation.Validator
}

func NewResourceService(
	topics domain.TopicRepository,
	resources domain.ResourceRepository,
	videos domain.VideoSearcher,
	generator domain.TextGenerator,
	c domain.Cache,
	cacheTTL time.Duration,
) ResourceService {
	return &resourceService{
		topics:    topics,
		resources: resources,
		videos:    videos,
		generator: generator,
		cache:     jsonCache{cache: c, ttl: cacheTTL},
		validator: validation.NewValidator(),
	}
}

func (s *resourceService) Videos(ctx context.Context, req *dto.TopicResourceRequest) (*dto.VideosResponse, error) {
	topic, subtopic, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	stored, err := s.resources.ListVideos(ctx, topic.ID, subtopic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load videos", err)
	}
	if len(stored) == 0 {
		found, err := s.videos.SearchVideos(ctx, resourceQuery(topic.Name, subtopic)+" tutorial", videosPerTopic)
		if err != nil {
			logger.Get().Error("Video search failed", zap.Error(err), zap.String("topic", topic.Name))
			return nil, err
		}
		if len(found) > videosPerTopic {
			found = found[:videosPerTopic]
		}
		if err := s.resources.SaveVideos(ctx, topic.ID, subtopic, found); err != nil {
			return nil, domain.NewInternalError("Failed to store videos", err)
		}
		stored = found
	}

	resp := &dto.VideosResponse{Videos: make([]dto.VideoResponse, 0, len(stored))}
	for _, v := range stored {
		resp.Videos = append(resp.Videos, dto.VideoResponse{
			Title:     v.Title,
			URL:       v.URL,
			Duration:  v.Duration,
			Thumbnail: v.Thumbnail,
		})
	}
	return resp, nil
}

func (s *resourceService) Articles(ctx context.Context, req *dto.TopicResourceRequest) (*dto.ArticlesResponse, error) {
	topic, subtopic, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	key := cache.ContentKey("articles", topic.Name, subtopic)
	var resp dto.ArticlesResponse
	if s.cache.get(ctx, key, &resp) {
		return &resp, nil
	}

	stored, err := s.resources.ListArticles(ctx, topic.ID, subtopic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load articles", err)
	}
	if len(stored) == 0 {
		var generated []dto.ArticleResponse
		if err := s.generateList(ctx, articlesPrompt(resourceQuery(topic.Name, subtopic)), &generated); err != nil {
			return nil, err
		}
		for _, a := range generated {
			if a.Title == "" || a.URL == "" {
				continue
			}
			stored = append(stored, domain.Article{Title: a.Title, URL: a.URL, ReadTime: a.ReadTime})
		}
		if err := s.resources.SaveArticles(ctx, topic.ID, subtopic, stored); err != nil {
			return nil, domain.NewInternalError("Failed to store articles", err)
		}
	}

	resp.Articles = make([]dto.ArticleResponse, 0, len(stored))
	for _, a := range stored {
		resp.Articles = append(resp.Articles, dto.ArticleResponse{Title: a.Title, URL: a.URL, ReadTime: a.ReadTime})
	}
	s.cache.set(ctx, key, &resp)
	return &resp, nil
}

func (s *resourceService) Documentation(ctx context.Context, req *dto.TopicResourceRequest) (*dto.DocumentationResponse, error) {
	topic, subtopic, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	key := cache.ContentKey("documentation", topic.Name, subtopic)
	var resp dto.DocumentationResponse
	if s.cache.get(ctx, key, &resp) {
		return &resp, nil
	}

	stored, err := s.resources.ListDocumentation(ctx, topic.ID, subtopic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load documentation", err)
	}
	if len(stored) == 0 {
		var generated []dto.DocumentationItem
		if err := s.generateList(ctx, documentationPrompt(resourceQuery(topic.Name, subtopic)), &generated); err != nil {
			return nil, err
		}
		for _, d := range generated {
			if d.Title == "" || d.URL == "" {
				continue
			}
			stored = append(stored, domain.Documentation{Title: d.Title, URL: d.URL, Type: d.Type})
		}
		if err := s.resources.SaveDocumentation(ctx, topic.ID, subtopic, stored); err != nil {
			return nil, domain.NewInternalError("Failed to store documentation", err)
		}
	}

	resp.Documentation = make([]dto.DocumentationItem, 0, len(stored))
	for _, d := range stored {
		resp.Documentation = append(resp.Documentation, dto.DocumentationItem{Title: d.Title, URL: d.URL, Type: d.Type})
	}
	s.cache.set(ctx, key, &resp)
	return &resp, nil
}

// resolve validates the request and returns its topic, creating it if needed.
func (s *resourceService) resolve(ctx context.Context, req *dto.TopicResourceRequest) (*domain.Topic, string, error) {
	if err := s.validator.ValidateTopicResource(req); err != nil {
		return nil, "", err
	}
	name := strings.TrimSpace(req.TopicName)
	subtopic := strings.TrimSpace(req.SubtopicName)

	topic, err := s.topics.GetTopicByName(ctx, name)
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to look up topic", err)
	}
	if topic != nil {
		return topic, subtopic, nil
	}

	topic = &domain.Topic{Name: name}
	if err := s.topics.CreateTopic(ctx, topic); err != nil {
		if !domain.IsErrorCode(err, domain.ErrConflict) {
			return nil, "", domain.NewInternalError("Failed to create topic", err)
		}
		topic, err = s.topics.GetTopicByName(ctx, name)
		if err != nil || topic == nil {
			return nil, "", domain.NewInternalError("Failed to look up topic", err)
		}
		return topic, subtopic, nil
	}
	logger.Get().Info("Topic created for resources", zap.String("topic", name), zap.Int64("topic_id", topic.ID))
	return topic, subtopic, nil
}

func (s *resourceService) generateList(ctx context.Context, prompt string, v any) error {
	opts := domain.DefaultGenerateOptions()
	opts.JSON = true
	raw, err := s.generator.Generate(ctx, prompt, opts)
	if err != nil {
		return err
	}
	if err := llm.DecodeJSON(raw, v); err != nil {
		return domain.NewLLMServiceError(err)
	}
	return nil
}

func resourceQuery(topic, subtopic string) string {
	if subtopic == "" {
		return topic
	}
	return topic + " " + subtopic
}

func articlesPrompt(subject string) string {
	return fmt.Sprintf(`Generate %d high-quality, beginner-friendly articles about %s.
Return a JSON array with the following structure for each article:
{"title": "article title", "url": "article url", "readTime": "estimated read time"}
Make sure all URLs are valid and accessible.`, generatedPerTopic, subject)
}

func documentationPrompt(subject string) string {
	return fmt.Sprintf(`Generate %d official or widely recognized documentation sources for %s.
Return a JSON array with the following structure for each documentation:
{"title": "documentation title", "url": "documentation url", "type": "documentation type"}
Make sure all URLs are valid and accessible.`, generatedPerTopic, subject)
}
