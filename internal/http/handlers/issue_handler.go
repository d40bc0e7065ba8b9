// Issue HTTP handlers.
//
// This file exposes REST endpoints for issue resources:
//   - POST   /issues        (create)
//   - GET    /issues        (list)
//   - GET    /issues/{id}   (fetch)
//   - PATCH  /issues/{id}   (resolve)
//   - DELETE /issues/{id}   (delete, idempotent)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-issues-backend/internal/domain"
	"github.com/tbourn/go-issues-backend/internal/services"
)

//
// Service contract (context-aware)
//

// IssueService defines the issue operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IssueService interface {
	// Create registers a new issue; address and type are required.
	Create(ctx context.Context, address, issueType, notes string) (*domain.Issue, error)
	// List returns all issues (unpaginated, store-native order).
	List(ctx context.Context) ([]domain.Issue, error)
	// Get fetches a single issue by ID.
	Get(ctx context.Context, id string) (*domain.Issue, error)
	// Resolve transitions an issue to Resolved.
	Resolve(ctx context.Context, id string) (*services.StatusUpdate, error)
	// Delete removes an issue; absent IDs succeed.
	Delete(ctx context.Context, id string) error
	// Upload persists an attachment batch and commits its URLs.
	Upload(ctx context.Context, category domain.Category, issueID string, batch []services.UploadFile) (*services.UploadResult, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for issues and attachment uploads.
// It depends on the abstract service interface to keep transport concerns
// separate from business logic.
type Handlers struct {
	svc IssueService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(svc IssueService) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// CreateIssueRequest is the JSON payload for reporting an issue.
type CreateIssueRequest struct {
	// Address is the location of the problem; required.
	Address string `json:"address" example:"Main St 1"`
	// Type classifies the problem; required, open vocabulary.
	Type string `json:"type" example:"pothole"`
	// Notes optionally adds free-form detail.
	Notes string `json:"notes" example:"close to the bus stop"`
}

// ResolveIssueResponse reports a successful status transition.
type ResolveIssueResponse struct {
	Message  string        `json:"message" example:"Issue updated successfully"`
	Status   domain.Status `json:"status" example:"Resolved"`
	SolvedAt string        `json:"solvedAt" example:"2024-03-01"`
}

// DeleteIssueResponse acknowledges a delete.
type DeleteIssueResponse struct {
	Message string `json:"message" example:"Issue deleted successfully"`
}

//
// Handlers
//

// CreateIssue godoc
// @ID          createIssue
// @Summary     Report a new issue
// @Description Registers an issue with address, type, and optional notes.
// @Tags        Issues
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateIssueRequest  true  "Issue payload"
//
// @Success     201  {object}  domain.Issue
// @Failure     400  {object}  handlers.ErrorResponse  "Missing address or type"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /issues [post]
func (h *Handlers) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	issue, err := h.svc.Create(c.Request.Context(), req.Address, req.Type, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, issue)
}

// ListIssues godoc
// @ID          listIssues
// @Summary     List all issues
// @Description Returns every issue with its attachment URLs. No pagination;
// @Description order is store-native.
// @Tags        Issues
// @Produce     json
//
// @Success     200  {array}   domain.Issue
// @Failure     500  {object}  handlers.ErrorResponse  "Store fault"
// @Router      /issues [get]
func (h *Handlers) ListIssues(c *gin.Context) {
	issues, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, issues)
}

// GetIssue godoc
// @ID          getIssue
// @Summary     Fetch one issue
// @Tags        Issues
// @Produce     json
//
// @Param       id  path  string  true  "Issue ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Issue
// @Failure     404  {object}  handlers.ErrorResponse  "Issue not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /issues/{id} [get]
func (h *Handlers) GetIssue(c *gin.Context) {
	issue, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "issue not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, issue)
}

// ResolveIssue godoc
// @ID          resolveIssue
// @Summary     Mark an issue resolved
// @Description Drives the only supported status transition (Open → Resolved).
// @Description Resolving an already-resolved issue is rejected without a write.
// @Tags        Issues
// @Produce     json
//
// @Param       id  path  string  true  "Issue ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.ResolveIssueResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Already resolved"
// @Failure     404  {object}  handlers.ErrorResponse  "Issue not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /issues/{id} [patch]
func (h *Handlers) ResolveIssue(c *gin.Context) {
	upd, err := h.svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIssueNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "issue not found")
		case errors.Is(err, services.ErrAlreadyResolved):
			fail(c, http.StatusBadRequest, ErrCodeAlreadyResolved, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ResolveIssueResponse{
		Message:  "Issue updated successfully",
		Status:   upd.Status,
		SolvedAt: upd.SolvedAt,
	})
}

// DeleteIssue godoc
// @ID          deleteIssue
// @Summary     Delete an issue
// @Description Unconditional delete; removing a nonexistent issue succeeds.
// @Tags        Issues
// @Produce     json
//
// @Param       id  path  string  true  "Issue ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.DeleteIssueResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Store fault"
// @Router      /issues/{id} [delete]
func (h *Handlers) DeleteIssue(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, DeleteIssueResponse{Message: "Issue deleted successfully"})
}
