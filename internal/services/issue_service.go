// Package services – IssueService
//
// This file implements the IssueService facade, the single public entry
// point over the issue operations. It validates input, delegates persistence
// to the repository, and composes the lifecycle manager and the upload
// coordinator for status transitions and attachment batches.
//
// Service-level errors (e.g. ErrMissingFields, ErrIssueNotFound) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-issues-backend/internal/domain"
)

// IssueRepo defines the repository contract required by IssueService.
// Implementations are responsible for persistence of issue aggregates.
type IssueRepo interface {
	// CreateIssue inserts a new issue row; the repository assigns the ID
	// and the creation timestamp.
	CreateIssue(ctx context.Context, db *gorm.DB, address, issueType, notes string) (*domain.Issue, error)

	// GetIssue fetches an issue (with attachment URLs) by ID.
	GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error)

	// ListIssues returns all issues in store-native order.
	ListIssues(ctx context.Context, db *gorm.DB) ([]domain.Issue, error)

	// DeleteIssue removes an issue by ID; absent IDs are not an error.
	DeleteIssue(ctx context.Context, db *gorm.DB, id string) error
}

// IssueService provides the issue operations: create, list, get, resolve,
// delete, and attachment upload. Resolve and Upload are delegated to the
// composed LifecycleManager and UploadCoordinator.
type IssueService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the issue repository used by this service.
	Repo IssueRepo

	// Lifecycle enforces status transitions.
	Lifecycle *LifecycleManager
	// Uploader runs attachment batches.
	Uploader *UploadCoordinator
}

// NewIssueService constructs the facade over the given collaborators.
func NewIssueService(db *gorm.DB, r IssueRepo, lc *LifecycleManager, up *UploadCoordinator) *IssueService {
	return &IssueService{DB: db, Repo: r, Lifecycle: lc, Uploader: up}
}

// Create validates and persists a new issue. Address and type are required
// and rejected with ErrMissingFields before any I/O; notes are optional.
// The returned record carries the repository-assigned ID and creation
// timestamp.
func (s *IssueService) Create(ctx context.Context, address, issueType, notes string) (*domain.Issue, error) {
	address = strings.TrimSpace(address)
	issueType = strings.TrimSpace(issueType)
	if address == "" || issueType == "" {
		return nil, ErrMissingFields
	}
	issue, err := s.Repo.CreateIssue(ctx, s.DB, address, issueType, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	issuesCreated.Inc()
	return issue, nil
}

// List returns all issues. No pagination; order is store-native and not
// guaranteed sorted.
func (s *IssueService) List(ctx context.Context) ([]domain.Issue, error) {
	return s.Repo.ListIssues(ctx, s.DB)
}

// Get fetches one issue by ID, or ErrIssueNotFound.
func (s *IssueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	issue, err := s.Repo.GetIssue(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}

// Resolve transitions the issue to Resolved via the lifecycle manager and
// returns the written fields.
func (s *IssueService) Resolve(ctx context.Context, id string) (*StatusUpdate, error) {
	upd, err := s.Lifecycle.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	issuesResolved.Inc()
	return upd, nil
}

// Delete removes an issue unconditionally. Deleting a nonexistent ID
// succeeds; the underlying delete-by-key is fire-and-forget.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteIssue(ctx, s.DB, id)
}

// Upload persists an attachment batch for the issue and commits the
// resulting URLs, delegating to the upload coordinator.
func (s *IssueService) Upload(ctx context.Context, category domain.Category, issueID string, batch []UploadFile) (*UploadResult, error) {
	return s.Uploader.Upload(ctx, category, issueID, batch)
}
