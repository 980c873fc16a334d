package models

import "time"

// Resource names as registered in the dashboard.
const (
	ResourcePosts      = "posts"
	ResourceCategories = "categories"
	ResourceRoles      = "roles"
)

// Access-control actions checked by the dashboard before enabling buttons.
const (
	ActionList   = "list"
	ActionShow   = "show"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
)

// AccessDecision is the answer to a can(resource, action) check.
type AccessDecision struct {
	Can    bool   `json:"can"`
	Reason string `json:"reason,omitempty"`
}

// ChangeType enumerates live event kinds.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent is published after every successful resource mutation.
type ChangeEvent struct {
	Channel string        `json:"channel"`
	Type    ChangeType    `json:"type"`
	Payload ChangePayload `json:"payload"`
	Date    time.Time     `json:"date"`
}

// ChangePayload carries the affected ids and, for posts, the row after the change.
type ChangePayload struct {
	IDs  []int64 `json:"ids"`
	Post *Post   `json:"post,omitempty"`
}
