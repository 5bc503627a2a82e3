package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"topic-quiz/internal/adapter"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
)

type resourceFixture struct {
	topics    *MockTopicRepository
	resources *MockResourceRepository
	videos    *MockVideoSearcher
	gen       *MockTextGenerator
	redis     *miniredis.Miniredis
	svc       ResourceService
}

func newResourceFixture(t *testing.T) *resourceFixture {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &resourceFixture{
		topics:    new(MockTopicRepository),
		resources: new(MockResourceRepository),
		videos:    new(MockVideoSearcher),
		gen:       new(MockTextGenerator),
		redis:     mr,
	}
	f.svc = NewResourceService(f.topics, f.resources, f.videos, f.gen, adapter.NewRedisCacheAdapter(client), time.Hour)
	return f
}

func TestResourceService_Videos_Stored(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	f.topics.On("GetTopicByName", ctx, "Go").Return(goTopic, nil)
	f.resources.On("ListVideos", ctx, int64(7), "").Return([]domain.Video{
		{Title: "Go in 100 seconds", URL: "https://www.youtube.com/watch?v=abc", Duration: "01:40", Thumbnail: "t"},
	}, nil)

	resp, err := f.svc.Videos(ctx, &dto.TopicResourceRequest{TopicName: "Go"})

	require.NoError(t, err)
	require.Len(t, resp.Videos, 1)
	assert.Equal(t, "01:40", resp.Videos[0].Duration)
	f.videos.AssertNotCalled(t, "SearchVideos", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceService_Videos_SearchesAndCreatesTopic(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	found := []domain.Video{
		{Title: "one", URL: "https://www.youtube.com/watch?v=1"},
		{Title: "two", URL: "https://www.youtube.com/watch?v=2"},
		{Title: "three", URL: "https://www.youtube.com/watch?v=3"},
	}

	f.topics.On("GetTopicByName", ctx, "Go").Return(nil, nil)
	f.topics.On("CreateTopic", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Topic).ID = 8
	}).Return(nil)
	f.resources.On("ListVideos", ctx, int64(8), "Generics").Return([]domain.Video{}, nil)
	f.videos.On("SearchVideos", ctx, "Go Generics tutorial", 2).Return(found, nil)
	f.resources.On("SaveVideos", ctx, int64(8), "Generics", found[:2]).Return(nil)

	resp, err := f.svc.Videos(ctx, &dto.TopicResourceRequest{TopicName: "Go", SubtopicName: "Generics"})

	require.NoError(t, err)
	require.Len(t, resp.Videos, 2)
	assert.Equal(t, "two", resp.Videos[1].Title)
	f.resources.AssertExpectations(t)
	f.topics.AssertExpectations(t)
}

func TestResourceService_Videos_SearchFails(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	f.topics.On("GetTopicByName", ctx, "Go").Return(goTopic, nil)
	f.resources.On("ListVideos", ctx, int64(7), "").Return([]domain.Video{}, nil)
	f.videos.On("SearchVideos", ctx, "Go tutorial", 2).
		Return(nil, domain.NewExternalServiceError("YouTube search failed", errors.New("403")))

	_, err := f.svc.Videos(ctx, &dto.TopicResourceRequest{TopicName: "Go"})

	assert.True(t, domain.IsErrorCode(err, domain.ErrExternalService))
	f.resources.AssertNotCalled(t, "SaveVideos", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceService_Articles_GeneratesAndCaches(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	f.topics.On("GetTopicByName", ctx, "Go").Return(goTopic, nil)
	f.resources.On("ListArticles", ctx, int64(7), "").Return([]domain.Article{}, nil).Once()
	f.gen.On("Generate", ctx, mock.Anything, mock.Anything).Return(`[
		{"title": "Effective Go", "url": "https://go.dev/doc/effective_go", "readTime": "45 min"},
		{"title": "", "url": "https://example.com", "readTime": "1 min"}
	]`, nil).Once()
	f.resources.On("SaveArticles", ctx, int64(7), "", []domain.Article{
		{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", ReadTime: "45 min"},
	}).Return(nil).Once()

	resp, err := f.svc.Articles(ctx, &dto.TopicResourceRequest{TopicName: "Go"})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "45 min", resp.Articles[0].ReadTime)
	assert.True(t, f.redis.Exists(cache.ContentKey("articles", "Go", "")))

	again, err := f.svc.Articles(ctx, &dto.TopicResourceRequest{TopicName: "Go"})
	require.NoError(t, err)
	assert.Equal(t, resp, again)
	f.resources.AssertNumberOfCalls(t, "ListArticles", 1)
}

func TestResourceService_Documentation_Stored(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	f.topics.On("GetTopicByName", ctx, "Go").Return(goTopic, nil)
	f.resources.On("ListDocumentation", ctx, int64(7), "Modules").Return([]domain.Documentation{
		{Title: "Go Modules Reference", URL: "https://go.dev/ref/mod", Type: "Official Docs"},
	}, nil)

	resp, err := f.svc.Documentation(ctx, &dto.TopicResourceRequest{TopicName: "Go", SubtopicName: "Modules"})

	require.NoError(t, err)
	require.Len(t, resp.Documentation, 1)
	assert.Equal(t, "Official Docs", resp.Documentation[0].Type)
	f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceService_Documentation_BadLLMOutput(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	f.topics.On("GetTopicByName", ctx, "Go").Return(goTopic, nil)
	f.resources.On("ListDocumentation", ctx, int64(7), "").Return([]domain.Documentation{}, nil)
	f.gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("sorry", nil)

	_, err := f.svc.Documentation(ctx, &dto.TopicResourceRequest{TopicName: "Go"})

	assert.True(t, domain.IsErrorCode(err, domain.ErrLLMService))
}

func TestResourceService_MissingTopicName(t *testing.T) {
	f := newResourceFixture(t)

	_, err := f.svc.Articles(context.Background(), &dto.TopicResourceRequest{SubtopicName: "x"})

	de, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "topic_name", de.Field)
}
