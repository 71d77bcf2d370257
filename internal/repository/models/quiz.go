package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Category maps the categories table
type Category struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	UserID      string         `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Quiz maps the quizzes table
type Quiz struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	CategoryID  string         `db:"category_id"`
	UserID      string         `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Question maps the questions table. Position is NULL for detached questions.
type Question struct {
	ID        string        `db:"id"`
	QuizID    string        `db:"quiz_id"`
	Question  string        `db:"question"`
	Options   StringSlice   `db:"options"`
	Answer    string        `db:"answer"`
	Position  sql.NullInt64 `db:"position"`
	CreatedAt time.Time     `db:"created_at"`
}
