package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileupload/internal/domain"
	"fileupload/internal/handler"
	"fileupload/internal/middleware"
	"fileupload/internal/validator"
	"fileupload/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setSession(c *gin.Context) {
	c.Set(middleware.ContextKeySession, &domain.Session{Subject: "user-1", Email: "user@test.com"})
}

// multipartBody builds a form with a single "file" part carrying the given
// declared content type.
func multipartBody(t *testing.T, filename, contentType string, content []byte) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newUploadHandler(svc *mocks.MockUploadService) *handler.UploadHandler {
	return handler.NewUploadHandler(svc, validator.DefaultUploadValidator(), 0)
}

func serveUpload(h *handler.UploadHandler, body io.Reader, contentType string, withSession bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/files/upload", body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	if withSession {
		setSession(c)
	}
	h.Upload(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	content := bytes.Repeat([]byte{0xFF}, 2*1024*1024)
	svc.On("Store", mock.Anything, mock.MatchedBy(func(f *domain.CandidateFile) bool {
		return f.Name == "photo.jpg" && f.ContentType == "image/jpeg" && bytes.Equal(f.Data, content)
	})).Return("https://mybucket.s3.amazonaws.com/photo.jpg", nil).Once()

	body, ct := multipartBody(t, "photo.jpg", "image/jpeg", content)
	w := serveUpload(h, body, ct, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"url": "https://mybucket.s3.amazonaws.com/photo.jpg"}, decodeBody(t, w))
	svc.AssertExpectations(t)
}

func TestUploadHandler_Upload_KeepsDirectoryInFilename(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	svc.On("Store", mock.Anything, mock.MatchedBy(func(f *domain.CandidateFile) bool {
		return f.Name == "reports/q1.pdf"
	})).Return("https://mybucket.s3.amazonaws.com/reports/q1.pdf", nil).Once()

	body, ct := multipartBody(t, "reports/q1.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := serveUpload(h, body, ct, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"url": "https://mybucket.s3.amazonaws.com/reports/q1.pdf"}, decodeBody(t, w))
	svc.AssertExpectations(t)
}

func TestUploadHandler_Upload_OversizedPartNotBuffered(t *testing.T) {
	svc := new(mocks.MockUploadService)

	var seen *domain.CandidateFile
	capture := validator.Rule{Key: "capture", Check: func(f *domain.CandidateFile) bool {
		seen = f
		return true
	}}
	rules := append(validator.NewUploadRules(1024, domain.AllowedContentTypes), capture)
	h := handler.NewUploadHandler(svc, validator.NewUploadValidator(rules...), 0)

	body, ct := multipartBody(t, "clip.mp4", "video/mp4", make([]byte, 4096))
	w := serveUpload(h, body, ct, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{
		"error": "File size should be less than 1KB, File type should be JPEG, PNG, PDF, or Markdown",
	}, decodeBody(t, w))
	require.NotNil(t, seen)
	assert.Nil(t, seen.Data)
	assert.Equal(t, int64(4096), seen.Size())
	svc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload_NoSession(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	body, ct := multipartBody(t, "photo.jpg", "image/jpeg", []byte("x"))
	w := serveUpload(h, body, ct, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
	svc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload_EmptyBody(t *testing.T) {
	for name, body := range map[string]io.Reader{"nil": nil, "NoBody": http.NoBody} {
		t.Run(name, func(t *testing.T) {
			svc := new(mocks.MockUploadService)
			h := newUploadHandler(svc)

			w := serveUpload(h, body, "multipart/form-data; boundary=x", true)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Request body is empty", w.Body.String())
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
			svc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadHandler_Upload_NotMultipart(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	w := serveUpload(h, strings.NewReader(`{"file":"x"}`), "application/json", true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
}

func TestUploadHandler_Upload_NoFileField(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("file", "just text, not a file"))
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	w := serveUpload(h, body, writer.FormDataContentType(), true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
	svc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
		wantError   string
	}{
		{
			name:        "unsupported type only",
			filename:    "notes.txt",
			contentType: "text/plain",
			size:        1024,
			wantError:   "File type should be JPEG, PNG, PDF, or Markdown",
		},
		{
			name:        "too large only",
			filename:    "scan.pdf",
			contentType: "application/pdf",
			size:        6 * 1024 * 1024,
			wantError:   "File size should be less than 5MB",
		},
		{
			name:        "both violations size first",
			filename:    "video.mp4",
			contentType: "video/mp4",
			size:        10 * 1000 * 1000,
			wantError:   "File size should be less than 5MB, File type should be JPEG, PNG, PDF, or Markdown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockUploadService)
			h := newUploadHandler(svc)

			body, ct := multipartBody(t, tt.filename, tt.contentType, make([]byte, tt.size))
			w := serveUpload(h, body, ct, true)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]string{"error": tt.wantError}, decodeBody(t, w))
			svc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadHandler_Upload_StorageFailure(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	svc.On("Store", mock.Anything, mock.AnythingOfType("*domain.CandidateFile")).
		Return("", domain.ErrUploadFailed).Once()

	body, ct := multipartBody(t, "photo.png", "image/png", []byte("png"))
	w := serveUpload(h, body, ct, true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Upload to S3 failed", resp["error"])
	assert.NotContains(t, resp, "url")
}

func TestUploadHandler_Upload_UnexpectedError(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := newUploadHandler(svc)

	svc.On("Store", mock.Anything, mock.AnythingOfType("*domain.CandidateFile")).
		Return("", errors.New("something odd")).Once()

	body, ct := multipartBody(t, "readme.md", "text/markdown", []byte("# hi"))
	w := serveUpload(h, body, ct, true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to process request", decodeBody(t, w)["error"])
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{domain.ErrEmptyBody, http.StatusBadRequest, "Request body is empty"},
		{domain.ErrMissingFile, http.StatusBadRequest, "No file uploaded"},
		{&domain.ValidationError{Reasons: []string{"a", "b"}}, http.StatusBadRequest, "a, b"},
		{fmt.Errorf("wrapped: %w", domain.ErrUploadFailed), http.StatusInternalServerError, "Upload to S3 failed"},
		{errors.New("boom"), http.StatusInternalServerError, "Failed to process request"},
	}

	for _, tt := range tests {
		status, msg := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.wantStatus, status, tt.err.Error())
		assert.Equal(t, tt.wantMsg, msg, tt.err.Error())
	}
}
