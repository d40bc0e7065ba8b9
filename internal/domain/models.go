// Package domain defines the persistence models for reported infrastructure
// issues ("storingen") and their attachments, plus the closed status and
// category vocabularies. These types are mapped with GORM and form the core
// data layer of the application.
package domain

import (
	"time"
)

// Status is the lifecycle state of an issue. The vocabulary is closed and
// transitions are driven by a table rather than ad-hoc branching, so adding a
// future state (e.g. "In Progress") is a data change.
type Status string

const (
	// StatusOpen is the implicit initial state. It is never stored
	// explicitly until the issue leaves it; an empty status column reads
	// as Open.
	StatusOpen Status = "Open"

	// StatusResolved is terminal. No transition leaves it.
	StatusResolved Status = "Resolved"
)

// statusTransitions is the allowed transition table. A state absent from the
// map, or mapped to an empty set, is terminal.
var statusTransitions = map[Status]map[Status]bool{
	StatusOpen:     {StatusResolved: true},
	StatusResolved: {},
}

// CanTransition reports whether the state machine permits moving from s to
// target. The empty string is treated as StatusOpen.
func (s Status) CanTransition(target Status) bool {
	from := s
	if from == "" {
		from = StatusOpen
	}
	return statusTransitions[from][target]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	if s == "" {
		s = StatusOpen
	}
	return len(statusTransitions[s]) == 0
}

// Category classifies an attachment batch and selects which logical URL array
// of the issue receives the resulting URLs. It is a closed enum: raw request
// path segments must pass ParseCategory before they touch the record.
type Category string

const (
	// CategoryPhotos receives image attachment URLs.
	CategoryPhotos Category = "photos"

	// CategoryFiles receives non-image document URLs.
	CategoryFiles Category = "files"
)

// ParseCategory validates a raw category string (e.g. a URL path segment)
// against the closed vocabulary. The boolean is false for anything that is
// not exactly "photos" or "files".
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryPhotos:
		return CategoryPhotos, true
	case CategoryFiles:
		return CategoryFiles, true
	default:
		return "", false
	}
}

// String returns the wire form of the category.
func (c Category) String() string { return string(c) }

// Issue represents one reported infrastructure problem. An issue is created
// with a location and a free-form type, optionally annotated, accumulates
// attachment URLs over its lifetime, and is eventually marked resolved.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned at creation.
//   - Address: where the problem was observed; required.
//   - Type: open-vocabulary classification (e.g. "pothole"); required.
//   - Notes: optional free text.
//   - Status: lifecycle state; empty means Open. Resolved is terminal.
//   - SolvedAt: local calendar date (YYYY-MM-DD) of resolution; present iff
//     Status == Resolved.
//   - CreatedAt: server-assigned at creation, never mutated afterwards.
//   - Photos / Files: public attachment URLs, loaded from the attachments
//     table; serialized as plain URL arrays to match the public API shape.
type Issue struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Address   string    `json:"address"   gorm:"type:varchar(255);not null"`
	Type      string    `json:"type"      gorm:"type:varchar(64);not null;index"`
	Notes     string    `json:"notes,omitempty"    gorm:"type:text"`
	Status    Status    `json:"status,omitempty"   gorm:"type:varchar(16)"`
	SolvedAt  *string   `json:"solvedAt,omitempty" gorm:"type:varchar(10)"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create"`

	Photos []string `json:"photos,omitempty" gorm:"-"`
	Files  []string `json:"files,omitempty"  gorm:"-"`
}

// TableName returns the database table name for Issue.
func (Issue) TableName() string { return "issues" }

// CurrentStatus normalizes the stored status column: an empty value reads as
// StatusOpen.
func (i *Issue) CurrentStatus() Status {
	if i.Status == "" {
		return StatusOpen
	}
	return i.Status
}

// Attachment is one committed attachment URL belonging to an issue. The rows
// of this table are the substrate for the issue's photos/files arrays.
//
// The unique index over (issue_id, category, url) gives the append operation
// union semantics: concurrent appliers inserting the same URL cannot
// duplicate it, and appliers inserting different URLs cannot lose each
// other's writes.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - IssueID: owning issue (indexed, cascade delete).
//   - Category: "photos" or "files".
//   - URL: public blob URL.
//   - Position: arrival order within the upload batch, used to keep the
//     serialized arrays in input order.
type Attachment struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	IssueID   string    `json:"issue_id" gorm:"type:char(36);not null;index:idx_issue_attachments,priority:1;uniqueIndex:ux_attachment_issue_cat_url"`
	Category  Category  `json:"category" gorm:"type:varchar(16);not null;uniqueIndex:ux_attachment_issue_cat_url"`
	URL       string    `json:"url"      gorm:"type:text;not null;uniqueIndex:ux_attachment_issue_cat_url"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_issue_attachments,priority:2"`

	// Issue is the owning record. Attachments are cascade-deleted when the
	// issue is removed.
	Issue Issue `json:"-" gorm:"foreignKey:IssueID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Attachment.
func (Attachment) TableName() string { return "attachments" }
