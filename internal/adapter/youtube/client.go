package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/keyring"
	"topic-quiz/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client is a minimal YouTube Data API v3 client implementing
// domain.VideoSearcher.
type Client struct {
	http       *resty.Client
	keys       *keyring.Ring[string]
	maxResults int
}

func NewClient(cfg config.YouTubeConfig, keys *keyring.Ring[string]) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Client{http: http, keys: keys, maxResults: maxResults}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SearchVideos returns up to limit videos for query, in YouTube's ranking
// order, with durations resolved through a second /videos call.
func (c *Client) SearchVideos(ctx context.Context, query string, limit int) ([]domain.Video, error) {
	key, ok := c.keys.Next()
	if !ok {
		return nil, domain.NewExternalServiceError("YouTube search unavailable", errors.New("no API key configured"))
	}
	l := logger.Get()
	l.Info("Searching YouTube", zap.String("query", query))

	var search searchResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"type":       "video",
			"q":          query,
			"maxResults": strconv.Itoa(c.maxResults),
			"key":        key,
		}).
		SetResult(&search).
		SetError(&apiErr).
		Get("/search")
	if err != nil {
		return nil, domain.NewExternalServiceError("YouTube search failed", err)
	}
	if resp.IsError() {
		return nil, domain.NewExternalServiceError("YouTube search failed",
			fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Error.Message))
	}

	var ids []string
	titles := make(map[string]string)
	for _, item := range search.Items {
		if item.ID.VideoID == "" {
			l.Warn("Missing video ID in YouTube search result")
			continue
		}
		ids = append(ids, item.ID.VideoID)
		titles[item.ID.VideoID] = item.Snippet.Title
	}
	if len(ids) == 0 {
		return []domain.Video{}, nil
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	durations, err := c.durations(ctx, key, ids)
	if err != nil {
		// Titles and links are still useful without durations.
		l.Warn("Failed to fetch YouTube video durations", zap.Error(err))
	}

	videos := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		duration, ok := durations[id]
		if !ok {
			duration = "N/A"
		}
		videos = append(videos, domain.Video{
			Title:     titles[id],
			URL:       "https://www.youtube.com/watch?v=" + id,
			Duration:  duration,
			Thumbnail: ThumbnailURL(id),
		})
	}
	return videos, nil
}

func (c *Client) durations(ctx context.Context, key string, ids []string) (map[string]string, error) {
	var details videosResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "contentDetails",
			"id":   strings.Join(ids, ","),
			"key":  key,
		}).
		SetResult(&details).
		Get("/videos")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	out := make(map[string]string, len(details.Items))
	for _, item := range details.Items {
		out[item.ID] = FormatDuration(item.ContentDetails.Duration)
	}
	return out, nil
}

// ThumbnailURL is the high resolution still for a video.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

var (
	hoursRe   = regexp.MustCompile(`(\d+)H`)
	minutesRe = regexp.MustCompile(`(\d+)M`)
	secondsRe = regexp.MustCompile(`(\d+)S`)
)

// FormatDuration renders an ISO-8601 duration such as PT1H2M3S as HH:MM:SS,
// or MM:SS when it is shorter than an hour.
func FormatDuration(iso string) string {
	h, m, s := durationPart(hoursRe, iso), durationPart(minutesRe, iso), durationPart(secondsRe, iso)
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func durationPart(re *regexp.Regexp, iso string) int {
	match := re.FindStringSubmatch(iso)
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

var _ domain.VideoSearcher = (*Client)(nil)
