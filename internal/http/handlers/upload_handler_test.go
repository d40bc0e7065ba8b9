package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-issues-backend/internal/domain"
	"github.com/tbourn/go-issues-backend/internal/services"
)

func newUploadRouter(svc IssueService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc)
	r := gin.New()
	r.POST("/upload/:category/:id", h.UploadAttachments)
	return r
}

// multipartBody builds a multipart form with files under the given field name.
func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, name := range names {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		hdr.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("payload of " + name)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestUploadAttachments_UnknownCategory(t *testing.T) {
	called := false
	r := newUploadRouter(stubIssueSvc{upload: func(context.Context, domain.Category, string, []services.UploadFile) (*services.UploadResult, error) {
		called = true
		return nil, nil
	}})

	body, ctype := multipartBody(t, "videos", "clip.mp4")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/videos/i1", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if called {
		t.Fatalf("service must not be called for an unknown category")
	}
}

func TestUploadAttachments_NotMultipart(t *testing.T) {
	r := newUploadRouter(stubIssueSvc{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/photos/i1", strings.NewReader(`{"not":"multipart"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestUploadAttachments_EmptyBatch(t *testing.T) {
	r := newUploadRouter(stubIssueSvc{upload: func(_ context.Context, _ domain.Category, _ string, batch []services.UploadFile) (*services.UploadResult, error) {
		if len(batch) != 0 {
			t.Fatalf("expected empty batch, got %d files", len(batch))
		}
		return nil, services.ErrNoAttachments
	}})

	// Files posted under the wrong field name are invisible to the endpoint.
	body, ctype := multipartBody(t, "files", "doc.pdf")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/photos/i1", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeNoAttachments {
		t.Fatalf("code = %q; want %q", er.Code, ErrCodeNoAttachments)
	}
	if !strings.Contains(er.Message, "photos") {
		t.Fatalf("message should name the missing key, got %q", er.Message)
	}
}

func TestUploadAttachments_Success(t *testing.T) {
	var gotCat domain.Category
	var gotID string
	var gotBatch []services.UploadFile
	r := newUploadRouter(stubIssueSvc{upload: func(_ context.Context, cat domain.Category, id string, batch []services.UploadFile) (*services.UploadResult, error) {
		gotCat, gotID, gotBatch = cat, id, batch
		return &services.UploadResult{
			URLs:  []string{"http://blobs/photos/i1/1-a.jpg", "http://blobs/photos/i1/2-b.jpg"},
			Label: "Photos",
		}, nil
	}})

	body, ctype := multipartBody(t, "photos", "a.jpg", "b.jpg")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/photos/i1", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200. body=%s", w.Code, w.Body.String())
	}
	if gotCat != domain.CategoryPhotos || gotID != "i1" {
		t.Fatalf("service got category=%v id=%q", gotCat, gotID)
	}
	if len(gotBatch) != 2 || gotBatch[0].OriginalName != "a.jpg" || gotBatch[1].OriginalName != "b.jpg" {
		t.Fatalf("batch order not preserved: %+v", gotBatch)
	}
	if gotBatch[0].ContentType != "image/jpeg" {
		t.Fatalf("content type not forwarded: %q", gotBatch[0].ContentType)
	}
	if string(gotBatch[0].Data) != "payload of a.jpg" {
		t.Fatalf("file bytes not forwarded: %q", gotBatch[0].Data)
	}

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.URLs) != 2 {
		t.Fatalf("urls = %v; want 2 entries", resp.URLs)
	}
	if resp.Message != "Photos uploaded successfully" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestUploadAttachments_DutchMessage(t *testing.T) {
	r := newUploadRouter(stubIssueSvc{upload: func(context.Context, domain.Category, string, []services.UploadFile) (*services.UploadResult, error) {
		return &services.UploadResult{URLs: []string{"u1"}, Label: "Photos"}, nil
	}})

	body, ctype := multipartBody(t, "photos", "a.jpg")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/photos/i1", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Accept-Language", "nl-NL,nl;q=0.9,en;q=0.8")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Message != "Foto's succesvol geüpload" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestUploadAttachments_ErrorMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"too_many", services.ErrTooManyAttachments, http.StatusBadRequest, ErrCodeTooManyAttachments},
		{"issue_gone", services.ErrIssueNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"upload_failed", services.ErrUploadFailed, http.StatusInternalServerError, ErrCodeUploadFailed},
		{"commit_failed", services.ErrCommitFailed, http.StatusInternalServerError, ErrCodeCommitFailed},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := newUploadRouter(stubIssueSvc{upload: func(context.Context, domain.Category, string, []services.UploadFile) (*services.UploadResult, error) {
				return nil, tc.err
			}})

			body, ctype := multipartBody(t, "files", "doc.pdf")
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/upload/files/i1", body)
			req.Header.Set("Content-Type", ctype)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tc.wantStatus)
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.wantCode {
				t.Fatalf("code = %q; want %q", er.Code, tc.wantCode)
			}
		})
	}
}

func TestUploadSuccessMessage(t *testing.T) {
	tests := []struct {
		accept   string
		category domain.Category
		want     string
	}{
		{"", domain.CategoryPhotos, "Photos uploaded successfully"},
		{"en-US", domain.CategoryFiles, "Files uploaded successfully"},
		{"nl", domain.CategoryPhotos, "Foto's succesvol geüpload"},
		{"nl-BE", domain.CategoryFiles, "Bestanden succesvol geüpload"},
		{"fr-FR", domain.CategoryPhotos, "Photos uploaded successfully"},
		{"garbage;;;", domain.CategoryFiles, "Files uploaded successfully"},
	}
	for _, tc := range tests {
		if got := uploadSuccessMessage(tc.accept, tc.category); got != tc.want {
			t.Errorf("uploadSuccessMessage(%q, %v) = %q; want %q", tc.accept, tc.category, got, tc.want)
		}
	}
}
