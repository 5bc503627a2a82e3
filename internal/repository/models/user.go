package models

import (
	"database/sql"
	"time"
)

// User maps the USERS table.
type User struct {
	ID           string         `db:"ID"` // ULID
	Name         sql.NullString `db:"NAME"`
	Email        string         `db:"EMAIL"`
	PasswordHash string         `db:"PASSWORD_HASH"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}
