package models

import "time"

// Category groups posts.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SelectOption is the {label, value} pair used by the dashboard select inputs.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
