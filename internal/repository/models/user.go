package models

import (
	"database/sql"
	"time"
)

// User maps the users table
type User struct {
	ID          string         `db:"id"`
	ExternalID  string         `db:"external_id"`
	Email       string         `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	CreatedAt   time.Time      `db:"created_at"`
}
