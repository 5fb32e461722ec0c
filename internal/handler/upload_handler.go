package handler

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileupload/internal/domain"
	"fileupload/internal/middleware"
	"fileupload/internal/service"
	"fileupload/internal/validator"
)

const formFieldFile = "file"

// UploadHandler handles the file upload endpoint.
type UploadHandler struct {
	uploadService   service.UploadService
	validator       *validator.UploadValidator
	multipartMemory int64
}

// NewUploadHandler creates a new UploadHandler. multipartMemory bounds how
// much of a multipart body is held in memory before spilling to temp files.
func NewUploadHandler(uploadService service.UploadService, v *validator.UploadValidator, multipartMemory int64) *UploadHandler {
	if multipartMemory <= 0 {
		multipartMemory = 32 << 20
	}
	return &UploadHandler{
		uploadService:   uploadService,
		validator:       v,
		multipartMemory: multipartMemory,
	}
}

// Upload handles POST /api/files/upload
// @Summary Upload a file
// @Description Upload a JPEG, PNG, PDF, or Markdown file (max 5MB). The object key is the original file name.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} UploadResponse "File stored"
// @Failure 400 {object} ErrorResponse "Missing file or validation failure"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Upload failed"
// @Security BearerAuth
// @Router /files/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	url, err := h.process(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{URL: url})
}

// process runs the pipeline stages in order and stops at the first failing
// one.
func (h *UploadHandler) process(c *gin.Context) (string, error) {
	if _, err := middleware.GetSession(c); err != nil {
		return "", err
	}

	if isEmptyBody(c.Request) {
		return "", domain.ErrEmptyBody
	}

	file, err := h.readFile(c.Request)
	if err != nil {
		return "", err
	}

	if err := h.validator.Validate(file).Err(); err != nil {
		return "", err
	}

	return h.uploadService.Store(c.Request.Context(), file)
}

// readFile extracts the "file" part into memory. A body that is not
// multipart or lacks the part is domain.ErrMissingFile; failing to read a
// part that was found is an unexpected error. A part larger than the
// validator's size limit is left unread so the rules can reject it.
func (h *UploadHandler) readFile(r *http.Request) (*domain.CandidateFile, error) {
	if err := r.ParseMultipartForm(h.multipartMemory); err != nil {
		return nil, domain.ErrMissingFile
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[formFieldFile]
	if len(headers) == 0 {
		return nil, domain.ErrMissingFile
	}
	header := headers[0]

	file := &domain.CandidateFile{
		Name:        rawFilename(header),
		ContentType: header.Header.Get("Content-Type"),
	}
	if limit := h.validator.SizeLimit(); limit > 0 && header.Size > limit {
		file.DeclaredSize = header.Size
		return file, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload part: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload part: %w", err)
	}

	file.Data = data
	return file, nil
}

// rawFilename returns the filename parameter exactly as the client sent it.
// multipart.FileHeader.Filename has already been reduced to its base name.
func rawFilename(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err != nil || params["filename"] == "" {
		return header.Filename
	}
	return params["filename"]
}

func isEmptyBody(r *http.Request) bool {
	return r.Body == nil || r.Body == http.NoBody
}
