// Package services – LifecycleManager
//
// This file implements the LifecycleManager, which enforces the issue status
// state machine. The surface only ever drives the Open → Resolved transition;
// the transition table lives on domain.Status so future states are a data
// change here, not new branching.
//
// Service-level errors (ErrIssueNotFound, ErrAlreadyResolved) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-issues-backend/internal/domain"
)

// LifecycleRepo defines the repository contract required by LifecycleManager.
type LifecycleRepo interface {
	// GetIssue fetches an issue by ID, or gorm.ErrRecordNotFound.
	GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error)

	// UpdateIssueStatus writes exactly the status and solvedAt columns.
	UpdateIssueStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, solvedAt string) error
}

// StatusUpdate is the set of fields produced by a successful transition and
// merged into the issue record. Nothing else is written.
type StatusUpdate struct {
	Status   domain.Status `json:"status"`
	SolvedAt string        `json:"solvedAt"`
}

// LifecycleManager enforces the issue status state machine.
type LifecycleManager struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the issue repository used by this manager.
	Repo LifecycleRepo

	// Now supplies the wall clock; overridable in tests. The solvedAt
	// date is the local calendar day at the moment the transition
	// succeeds.
	Now func() time.Time
}

// NewLifecycleManager constructs a LifecycleManager with the real clock.
func NewLifecycleManager(db *gorm.DB, r LifecycleRepo) *LifecycleManager {
	return &LifecycleManager{DB: db, Repo: r, Now: time.Now}
}

// Resolve transitions the issue to Resolved and returns the written fields.
//
// Semantics:
//   - The issue must exist; otherwise ErrIssueNotFound.
//   - The transition must be permitted by the status table; resolving an
//     already-resolved issue yields ErrAlreadyResolved and no write.
//   - On success the issue's status becomes Resolved and solvedAt is set to
//     the local calendar date (YYYY-MM-DD).
//
// Concurrency & atomicity:
//   - The precondition check and the write run inside one transaction, so
//     two racing resolvers cannot both succeed.
func (m *LifecycleManager) Resolve(ctx context.Context, id string) (*StatusUpdate, error) {
	upd := &StatusUpdate{
		Status:   domain.StatusResolved,
		SolvedAt: m.now().Format("2006-01-02"),
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issue, err := m.Repo.GetIssue(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}
		if !issue.CurrentStatus().CanTransition(domain.StatusResolved) {
			return ErrAlreadyResolved
		}
		if err := m.Repo.UpdateIssueStatus(ctx, tx, id, upd.Status, upd.SolvedAt); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return upd, nil
}

// now returns the configured clock, defaulting to time.Now.
func (m *LifecycleManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
