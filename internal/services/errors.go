// Package services defines the business logic for the issue lifecycle and
// the attachment upload pipeline. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrIssueNotFound indicates that the referenced issue does not exist.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrMissingFields is returned when a create request omits the
	// required address or type field. It is detected before any I/O.
	ErrMissingFields = errors.New("address and type are required")

	// ErrAlreadyResolved is returned when a resolve is attempted on an
	// issue whose status is terminal. It is a rejected precondition, not
	// a server fault; no write is performed.
	ErrAlreadyResolved = errors.New("issue is already resolved")

	// ErrInvalidCategory is returned when an upload names a category
	// outside the closed {photos, files} vocabulary.
	ErrInvalidCategory = errors.New("category must be photos or files")

	// ErrNoAttachments is returned when an upload batch is empty or the
	// request carries no files under the expected category key. It is
	// detected before any store I/O.
	ErrNoAttachments = errors.New("no attachments in batch")

	// ErrTooManyAttachments is returned when an upload batch exceeds the
	// configured per-request limit.
	ErrTooManyAttachments = errors.New("too many attachments in batch")

	// ErrUploadFailed wraps a blob-store fault that aborted an upload
	// batch mid-flight. Retrying the whole batch is safe: completed blobs
	// are orphaned, never half-linked.
	ErrUploadFailed = errors.New("attachment upload failed")

	// ErrCommitFailed wraps a metadata fault after every blob in the
	// batch was written. The blobs are public but unlinked; callers
	// should retry the commit rather than re-upload.
	ErrCommitFailed = errors.New("attachment commit failed")
)
