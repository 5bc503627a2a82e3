package repository

import (
	"context"
	"fmt"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/repository/models"
	"topic-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxResourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) domain.ResourceRepository {
	return &sqlxResourceRepository{db: db}
}

func (r *sqlxResourceRepository) ListVideos(ctx context.Context, topicID int64, subtopic string) ([]domain.Video, error) {
	query := `SELECT id, topic_id, subtopic, title, url, duration, thumbnail, created_at, updated_at
	          FROM video_resources
	          WHERE topic_id = :1 AND NVL(subtopic, ' ') = NVL(:2, ' ')
	          ORDER BY id`

	var rows []models.VideoResource
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, topicID, subtopic); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	videos := make([]domain.Video, 0, len(rows))
	for _, row := range rows {
		videos = append(videos, domain.Video{
			ID:        row.ID,
			Title:     row.Title,
			URL:       row.URL,
			Duration:  util.NullStringToString(row.Duration),
			Thumbnail: util.NullStringToString(row.Thumbnail),
		})
	}
	return videos, nil
}

// SaveVideos upserts by (topic, subtopic, url).
func (r *sqlxResourceRepository) SaveVideos(ctx context.Context, topicID int64, subtopic string, videos []domain.Video) error {
	query := `MERGE INTO video_resources r
	          USING (SELECT :1 AS topic_id, :2 AS subtopic, :3 AS url FROM dual) s
	          ON (r.topic_id = s.topic_id AND NVL(r.subtopic, ' ') = NVL(s.subtopic, ' ') AND r.url = s.url)
	          WHEN MATCHED THEN UPDATE SET r.title = :4, r.duration = :5, r.thumbnail = :6, r.updated_at = :7
	          WHEN NOT MATCHED THEN INSERT (topic_id, subtopic, title, url, duration, thumbnail, created_at, updated_at)
	               VALUES (s.topic_id, s.subtopic, :8, s.url, :9, :10, :11, :12)`

	exec := GetExecutor(ctx, r.db)
	now := time.Now()
	for _, v := range videos {
		duration := util.StringToNullString(v.Duration)
		thumbnail := util.StringToNullString(v.Thumbnail)
		if _, err := exec.ExecContext(ctx, query,
			topicID, util.StringToNullString(subtopic), v.URL,
			v.Title, duration, thumbnail, now,
			v.Title, duration, thumbnail, now, now,
		); err != nil {
			return fmt.Errorf("failed to save video %q: %w", v.URL, err)
		}
	}
	return nil
}

func (r *sqlxResourceRepository) ListArticles(ctx context.Context, topicID int64, subtopic string) ([]domain.Article, error) {
	query := `SELECT id, topic_id, subtopic, title, url, read_time, created_at, updated_at
	          FROM article_resources
	          WHERE topic_id = :1 AND NVL(subtopic, ' ') = NVL(:2, ' ')
	          ORDER BY id`

	var rows []models.ArticleResource
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, topicID, subtopic); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	articles := make([]domain.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, domain.Article{
			ID:       row.ID,
			Title:    row.Title,
			URL:      row.URL,
			ReadTime: util.NullStringToString(row.ReadTime),
		})
	}
	return articles, nil
}

func (r *sqlxResourceRepository) SaveArticles(ctx context.Context, topicID int64, subtopic string, articles []domain.Article) error {
	query := `MERGE INTO article_resources r
	          USING (SELECT :1 AS topic_id, :2 AS subtopic, :3 AS url FROM dual) s
	          ON (r.topic_id = s.topic_id AND NVL(r.subtopic, ' ') = NVL(s.subtopic, ' ') AND r.url = s.url)
	          WHEN MATCHED THEN UPDATE SET r.title = :4, r.read_time = :5, r.updated_at = :6
	          WHEN NOT MATCHED THEN INSERT (topic_id, subtopic, title, url, read_time, created_at, updated_at)
	               VALUES (s.topic_id, s.subtopic, :7, s.url, :8, :9, :10)`

	exec := GetExecutor(ctx, r.db)
	now := time.Now()
	for _, a := range articles {
		readTime := util.StringToNullString(a.ReadTime)
		if _, err := exec.ExecContext(ctx, query,
			topicID, util.StringToNullString(subtopic), a.URL,
			a.Title, readTime, now,
			a.Title, readTime, now, now,
		); err != nil {
			return fmt.Errorf("failed to save article %q: %w", a.URL, err)
		}
	}
	return nil
}

func (r *sqlxResourceRepository) ListDocumentation(ctx context.Context, topicID int64, subtopic string) ([]domain.Documentation, error) {
	query := `SELECT id, topic_id, subtopic, title, url, doc_type, created_at, updated_at
	          FROM documentation_resources
	          WHERE topic_id = :1 AND NVL(subtopic, ' ') = NVL(:2, ' ')
	          ORDER BY id`

	var rows []models.DocumentationResource
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, topicID, subtopic); err != nil {
		return nil, fmt.Errorf("failed to list documentation: %w", err)
	}
	docs := make([]domain.Documentation, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, domain.Documentation{
			ID:    row.ID,
			Title: row.Title,
			URL:   row.URL,
			Type:  util.NullStringToString(row.DocType),
		})
	}
	return docs, nil
}

func (r *sqlxResourceRepository) SaveDocumentation(ctx context.Context, topicID int64, subtopic string, docs []domain.Documentation) error {
	query := `MERGE INTO documentation_resources r
	          USING (SELECT :1 AS topic_id, :2 AS subtopic, :3 AS url FROM dual) s
	          ON (r.topic_id = s.topic_id AND NVL(r.subtopic, ' ') = NVL(s.subtopic, ' ') AND r.url = s.url)
	          WHEN MATCHED THEN UPDATE SET r.title = :4, r.doc_type = :5, r.updated_at = :6
	          WHEN NOT MATCHED THEN INSERT (topic_id, subtopic, title, url, doc_type, created_at, updated_at)
	               VALUES (s.topic_id, s.subtopic, :7, s.url, :8, :9, :10)`

	exec := GetExecutor(ctx, r.db)
	now := time.Now()
	for _, d := range docs {
		docType := util.StringToNullString(d.Type)
		if _, err := exec.ExecContext(ctx, query,
			topicID, util.StringToNullString(subtopic), d.URL,
			d.Title, docType, now,
			d.Title, docType, now, now,
		); err != nil {
			return fmt.Errorf("failed to save documentation %q: %w", d.URL, err)
		}
	}
	return nil
}
