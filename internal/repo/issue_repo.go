// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Issue model
// and its attachment rows.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an issue is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - DeleteIssue is deliberately idempotent: deleting an absent id is not
//     an error.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Append-union contract:
//   - AppendAttachmentURLs inserts one attachment row per URL inside a single
//     transaction, with ON CONFLICT DO NOTHING against the unique
//     (issue_id, category, url) index. Concurrent appliers therefore get
//     union semantics: no duplicates, no lost updates, and either all rows
//     of a batch become visible or none do.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-issues-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateIssue inserts a new issue row with the given fields. The issue ID is
// a randomly generated UUID (string) and CreatedAt is the server-assigned
// creation timestamp (UTC); neither is accepted from the caller.
//
// On success, it returns the persisted Issue. On failure, it returns a DB error.
func CreateIssue(ctx context.Context, db *gorm.DB, address, issueType, notes string) (*domain.Issue, error) {
	i := &domain.Issue{
		ID:        uuid.NewString(),
		Address:   address,
		Type:      issueType,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

// GetIssue fetches a single issue by its ID, including its committed
// attachment URLs. If the record does not exist, it returns ErrNotFound.
// On other DB errors, the raw error is returned.
func GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error) {
	var i domain.Issue
	if err := db.WithContext(ctx).Where("id = ?", id).First(&i).Error; err != nil {
		return nil, err
	}
	if err := loadAttachments(ctx, db, []*domain.Issue{&i}); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListIssues returns all issues with their attachment URLs populated.
// Ordering is store-native (insertion order for SQLite); callers must not
// rely on it. It returns an empty slice when the table is empty.
func ListIssues(ctx context.Context, db *gorm.DB) ([]domain.Issue, error) {
	var out []domain.Issue
	if err := db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	refs := make([]*domain.Issue, len(out))
	for n := range out {
		refs[n] = &out[n]
	}
	if err := loadAttachments(ctx, db, refs); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateIssueStatus writes the status and solvedAt fields produced by a
// lifecycle transition. No other column is touched. If no row matches id,
// it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateIssueStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, solvedAt string) error {
	res := db.WithContext(ctx).
		Model(&domain.Issue{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    status,
			"solved_at": solvedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteIssue removes an issue and its attachment rows. It is idempotent:
// deleting a nonexistent id succeeds (fire-and-forget delete-by-key, matching
// the metadata store's semantics). On DB error, the raw error is returned.
func DeleteIssue(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Issue{}).Error
	})
}

// AppendAttachmentURLs commits a batch of attachment URLs onto an issue as a
// single atomic write. One row per URL is inserted inside a transaction;
// duplicates of already-committed URLs are skipped via the unique
// (issue_id, category, url) index, yielding union semantics under concurrent
// appliers. Position preserves the batch's input order.
//
// It returns ErrNotFound when the issue does not exist, so callers never
// commit URLs against a missing record.
func AppendAttachmentURLs(ctx context.Context, db *gorm.DB, issueID string, category domain.Category, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Issue{}).Where("id = ?", issueID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		now := time.Now().UTC()
		rows := make([]domain.Attachment, 0, len(urls))
		for pos, u := range urls {
			rows = append(rows, domain.Attachment{
				ID:        uuid.NewString(),
				IssueID:   issueID,
				Category:  category,
				URL:       u,
				Position:  pos,
				CreatedAt: now,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// loadAttachments populates Photos and Files on the given issues from the
// attachments table, preserving commit order (created_at, then position
// within a batch).
func loadAttachments(ctx context.Context, db *gorm.DB, issues []*domain.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	ids := make([]string, 0, len(issues))
	byID := make(map[string]*domain.Issue, len(issues))
	for _, i := range issues {
		ids = append(ids, i.ID)
		byID[i.ID] = i
	}

	var rows []domain.Attachment
	err := db.WithContext(ctx).
		Where("issue_id IN ?", ids).
		Order("created_at asc").
		Order("position asc").
		Find(&rows).Error
	if err != nil {
		return err
	}
	for _, a := range rows {
		i := byID[a.IssueID]
		if i == nil {
			continue
		}
		switch a.Category {
		case domain.CategoryPhotos:
			i.Photos = append(i.Photos, a.URL)
		case domain.CategoryFiles:
			i.Files = append(i.Files, a.URL)
		}
	}
	return nil
}
