package models

import (
	"database/sql"
	"time"
)

// Quiz is the database row for the quizzes table. Questions holds the
// validated question array serialized as JSON in a CLOB.
type Quiz struct {
	ID         string       `db:"id"`
	Theme      string       `db:"theme"`
	Difficulty int          `db:"difficulty"`
	Questions  string       `db:"questions"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	DeletedAt  sql.NullTime `db:"deleted_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
