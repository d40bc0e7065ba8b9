// Attachment upload HTTP handler.
//
// This file exposes the multipart upload endpoint:
//   - POST /upload/{category}/{id}
//
// The category path segment selects which logical URL array of the issue
// receives the batch. It is parsed against the closed {photos, files}
// vocabulary before anything else happens; the raw segment never indexes
// into the record. Files must be posted under the multipart field named
// after the category (the same convention the original clients use).
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-issues-backend/internal/domain"
	"github.com/tbourn/go-issues-backend/internal/services"
)

// UploadResponse reports a committed attachment batch.
type UploadResponse struct {
	// Message is a localized confirmation (Accept-Language: nl or en).
	Message string `json:"message" example:"Photos uploaded successfully"`
	// URLs are the new public attachment URLs, in input order.
	URLs []string `json:"urls"`
}

// UploadAttachments godoc
// @ID          uploadAttachments
// @Summary     Upload attachments for an issue
// @Description Accepts up to 10 files under the multipart field named after
// @Description the category. All files are stored and their URLs committed to
// @Description the issue in one atomic write; a mid-batch failure commits
// @Description nothing.
// @Tags        Uploads
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       category  path      string  true  "Attachment category"  Enums(photos, files)
// @Param       id        path      string  true  "Issue ID (UUID)"      format(uuid)
// @Param       photos    formData  file    false "Files under the category field name"
//
// @Success     200  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad category or empty batch"
// @Failure     404  {object}  handlers.ErrorResponse  "Issue not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Upload or commit fault"
// @Router      /upload/{category}/{id} [post]
func (h *Handlers) UploadAttachments(c *gin.Context) {
	category, okCat := domain.ParseCategory(c.Param("category"))
	if !okCat {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "category must be photos or files")
		return
	}
	issueID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid multipart form")
		return
	}

	batch, err := readBatch(form.File[category.String()])
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable attachment in form")
		return
	}

	res, err := h.svc.Upload(c.Request.Context(), category, issueID, batch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAttachments):
			fail(c, http.StatusBadRequest, ErrCodeNoAttachments,
				"no files found for key: "+category.String())
		case errors.Is(err, services.ErrTooManyAttachments):
			fail(c, http.StatusBadRequest, ErrCodeTooManyAttachments, err.Error())
		case errors.Is(err, services.ErrInvalidCategory):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrIssueNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "issue not found")
		case errors.Is(err, services.ErrCommitFailed):
			fail(c, http.StatusInternalServerError, ErrCodeCommitFailed, err.Error())
		case errors.Is(err, services.ErrUploadFailed):
			fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, UploadResponse{
		Message: uploadSuccessMessage(c.GetHeader("Accept-Language"), category),
		URLs:    res.URLs,
	})
}

// readBatch buffers the posted files into memory in arrival order, carrying
// each file's client-declared name and content type.
func readBatch(files []*multipart.FileHeader) ([]services.UploadFile, error) {
	batch := make([]services.UploadFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		batch = append(batch, services.UploadFile{
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	return batch, nil
}
