package models

import (
	"database/sql"
	"time"
)

// VideoResource maps the VIDEO_RESOURCES table.
type VideoResource struct {
	ID        int64          `db:"ID"`
	TopicID   int64          `db:"TOPIC_ID"`
	Subtopic  sql.NullString `db:"SUBTOPIC"`
	Title     string         `db:"TITLE"`
	URL       string         `db:"URL"`
	Duration  sql.NullString `db:"DURATION"`
	Thumbnail sql.NullString `db:"THUMBNAIL"`
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}

type ArticleResource struct {
	ID        int64          `db:"ID"`
	TopicID   int64          `db:"TOPIC_ID"`
	Subtopic  sql.NullString `db:"SUBTOPIC"`
	Title     string         `db:"TITLE"`
	URL       string         `db:"URL"`
	ReadTime  sql.NullString `db:"READ_TIME"`
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}

type DocumentationResource struct {
	ID        int64          `db:"ID"`
	TopicID   int64          `db:"TOPIC_ID"`
	Subtopic  sql.NullString `db:"SUBTOPIC"`
	Title     string         `db:"TITLE"`
	URL       string         `db:"URL"`
	DocType   sql.NullString `db:"DOC_TYPE"`
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}
