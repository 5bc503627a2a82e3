package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/repository/models"
	"topic-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxTopicRepository struct {
	db *sqlx.DB
}

func NewTopicRepository(db *sqlx.DB) domain.TopicRepository {
	return &sqlxTopicRepository{db: db}
}

// GetTopicByName returns (nil, nil) when the topic does not exist.
func (r *sqlxTopicRepository) GetTopicByName(ctx context.Context, name string) (*domain.Topic, error) {
	var topic models.Topic
	query := `SELECT id, name, content, created_at FROM topics WHERE name = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &topic, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic %q: %w", name, err)
	}
	return toDomainTopic(&topic), nil
}

// CreateTopic inserts the topic and fills in its identity column.
func (r *sqlxTopicRepository) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now()
	}

	exec := GetExecutor(ctx, r.db)
	insert := `INSERT INTO topics (name, content, created_at) VALUES (:1, :2, :3)`
	if _, err := exec.ExecContext(ctx, insert, topic.Name, util.StringToNullString(topic.Content), topic.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("Topic %q already exists", topic.Name))
		}
		return fmt.Errorf("failed to create topic: %w", err)
	}

	if err := exec.GetContext(ctx, &topic.ID, `SELECT id FROM topics WHERE name = :1`, topic.Name); err != nil {
		return fmt.Errorf("failed to read topic id: %w", err)
	}
	return nil
}

func (r *sqlxTopicRepository) UpdateTopicContent(ctx context.Context, id int64, content string) error {
	query := `UPDATE topics SET content = :1 WHERE id = :2`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, util.StringToNullString(content), id)
	if err != nil {
		return fmt.Errorf("failed to update topic %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("Topic not found")
	}
	return nil
}

func toDomainTopic(m *models.Topic) *domain.Topic {
	return &domain.Topic{
		ID:        m.ID,
		Name:      m.Name,
		Content:   util.NullStringToString(m.Content),
		CreatedAt: m.CreatedAt,
	}
}
