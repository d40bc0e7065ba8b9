// Package services – UploadCoordinator
//
// This file implements the attachment ingestion pipeline: it takes one
// category-tagged batch of binary attachments for an issue, persists each to
// the blob store under a collision-resistant key, and commits the resulting
// URLs onto the issue record as a single union-append write.
//
// Failure semantics are deliberate and asymmetric:
//   - The batch is validated (non-empty, within limit, issue exists) before
//     any store I/O.
//   - Files upload sequentially, in input order. The first stream failure
//     aborts the rest of the batch; blobs that completed earlier stay in
//     storage but their URLs are never committed (orphans, logged and
//     counted, safe to re-upload under fresh keys).
//   - Only after every file succeeded is the URL list committed in one
//     metadata write, so readers never observe a partial batch.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-issues-backend/internal/blobstore"
	"github.com/tbourn/go-issues-backend/internal/domain"
)

// UploadRepo defines the repository contract required by UploadCoordinator.
type UploadRepo interface {
	// GetIssue fetches the owning issue, or gorm.ErrRecordNotFound.
	GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error)

	// AppendAttachmentURLs commits a URL batch with union semantics in a
	// single atomic write.
	AppendAttachmentURLs(ctx context.Context, db *gorm.DB, issueID string, category domain.Category, urls []string) error
}

// UploadFile is one attachment within a batch: its bytes, the name the
// client gave it, and its declared content type.
type UploadFile struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// UploadResult reports a committed batch: the new public URLs in input
// order and a human-readable label for the category.
type UploadResult struct {
	URLs  []string
	Label string
}

// UploadCoordinator orchestrates per-file blob writes for one request batch
// and commits the resulting URLs to the owning issue exactly once.
//
// The coordinator is safe for concurrent use; the key-stamp sequence is
// shared so keys stay unique across concurrent batches in this process.
type UploadCoordinator struct {
	// DB is the GORM handle used for the metadata commit.
	DB *gorm.DB
	// Repo is the issue repository used for existence checks and commits.
	Repo UploadRepo
	// Store is the blob store that persists attachment bytes.
	Store blobstore.Store

	// MaxBatch caps the number of files accepted per batch. Zero means
	// no cap.
	MaxBatch int

	// Now supplies the wall clock for key stamps; overridable in tests.
	Now func() time.Time

	mu        sync.Mutex
	lastStamp int64
}

// NewUploadCoordinator constructs an UploadCoordinator with the real clock.
func NewUploadCoordinator(db *gorm.DB, r UploadRepo, store blobstore.Store, maxBatch int) *UploadCoordinator {
	return &UploadCoordinator{DB: db, Repo: r, Store: store, MaxBatch: maxBatch, Now: time.Now}
}

// Upload runs one attachment batch for issueID under category.
//
// Errors:
//   - ErrNoAttachments for an empty batch (before any I/O).
//   - ErrTooManyAttachments when the batch exceeds MaxBatch.
//   - ErrIssueNotFound when the issue does not exist (checked before blob
//     I/O so URLs are never written for a missing record).
//   - ErrUploadFailed (wrapped with the cause) on a blob-store fault; the
//     whole batch is safe to retry and will produce fresh keys.
//   - ErrCommitFailed (wrapped with the cause) when every blob succeeded
//     but the metadata write failed; the URLs are public but unlinked and
//     the commit should be retried, not the uploads.
func (u *UploadCoordinator) Upload(ctx context.Context, category domain.Category, issueID string, batch []UploadFile) (*UploadResult, error) {
	if _, ok := domain.ParseCategory(category.String()); !ok {
		return nil, ErrInvalidCategory
	}
	if len(batch) == 0 {
		return nil, ErrNoAttachments
	}
	if u.MaxBatch > 0 && len(batch) > u.MaxBatch {
		return nil, ErrTooManyAttachments
	}

	if _, err := u.Repo.GetIssue(ctx, u.DB, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	// Sequential by design: bounds memory and connection pressure and
	// keeps the committed URL order equal to input order.
	urls := make([]string, 0, len(batch))
	keys := make([]string, 0, len(batch))
	for _, f := range batch {
		key := u.objectKey(category, issueID, f.OriginalName)
		if err := u.putOne(ctx, key, f); err != nil {
			u.reportOrphans(issueID, keys)
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		keys = append(keys, key)
		urls = append(urls, u.Store.PublicURL(key))
	}

	// Single commit: partial batches never partially appear.
	if err := u.Repo.AppendAttachmentURLs(ctx, u.DB, issueID, category, urls); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Issue deleted while the batch was uploading.
			u.reportOrphans(issueID, keys)
			return nil, ErrIssueNotFound
		}
		u.reportOrphans(issueID, keys)
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	attachmentsUploaded.WithLabelValues(category.String()).Add(float64(len(urls)))
	return &UploadResult{URLs: urls, Label: categoryLabel(category)}, nil
}

// putOne runs the three-step per-file protocol: open a write stream under
// the derived key tagged with the declared content type, write all bytes,
// then mark the finished object publicly readable.
func (u *UploadCoordinator) putOne(ctx context.Context, key string, f UploadFile) error {
	if err := u.Store.Put(ctx, key, f.ContentType, bytes.NewReader(f.Data)); err != nil {
		return err
	}
	return u.Store.MakePublic(ctx, key)
}

// objectKey derives the blob key for one file:
//
//	<category>/<issueID>/<millis>-<originalName>
//
// The millisecond stamp is monotonically non-decreasing across the process;
// when two files land in the same millisecond the stamp is bumped by one so
// arrival order breaks the tie and keys stay collision-free within and
// across batches.
func (u *UploadCoordinator) objectKey(category domain.Category, issueID, originalName string) string {
	return fmt.Sprintf("%s/%s/%d-%s", category, issueID, u.nextStamp(), sanitizeName(originalName))
}

// nextStamp returns the next key timestamp in milliseconds, never repeating
// and never going backwards.
func (u *UploadCoordinator) nextStamp() int64 {
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	ms := now().UnixMilli()

	u.mu.Lock()
	if ms <= u.lastStamp {
		u.lastStamp++
	} else {
		u.lastStamp = ms
	}
	ms = u.lastStamp
	u.mu.Unlock()
	return ms
}

// reportOrphans records blobs that were written durably but whose URLs will
// never be committed because the batch failed afterwards. They are not
// deleted: attachments are additive and a retried batch writes fresh keys,
// so the only cost is storage until an operator sweeps them.
func (u *UploadCoordinator) reportOrphans(issueID string, keys []string) {
	if len(keys) == 0 {
		return
	}
	orphanedBlobs.Add(float64(len(keys)))
	log.Warn().
		Str("issue_id", issueID).
		Strs("blob_keys", keys).
		Msg("upload batch aborted; blobs left unlinked")
}

// sanitizeName reduces a client-supplied file name to its base component so
// it cannot steer the object key out of the issue's prefix. Blank names get
// a placeholder.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "attachment"
	}
	return name
}

// categoryLabel returns the human-readable label used in responses.
func categoryLabel(c domain.Category) string {
	if c == domain.CategoryPhotos {
		return "Photos"
	}
	return "Files"
}
