// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes distinguish the three client-actionable outcomes
//     of the upload protocol: "fix your request" (no_attachments,
//     too_many_attachments), "retry the batch" (upload_failed), and "retry
//     only the commit" (commit_failed).
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeAlreadyResolved    = "already_resolved"
	ErrCodeNoAttachments      = "no_attachments"
	ErrCodeTooManyAttachments = "too_many_attachments"
	ErrCodeUploadFailed       = "upload_failed"
	ErrCodeCommitFailed       = "commit_failed"
	ErrCodeCreateFailed       = "create_failed"
	ErrCodeListFailed         = "list_failed"
	ErrCodeDeleteFailed       = "delete_failed"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
)
