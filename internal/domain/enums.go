package domain

// MaxUploadSize is the largest accepted payload, inclusive.
const MaxUploadSize int64 = 5 * 1024 * 1024

// Content types accepted for upload.
const (
	ContentTypeJPEG     = "image/jpeg"
	ContentTypePNG      = "image/png"
	ContentTypePDF      = "application/pdf"
	ContentTypeMarkdown = "text/markdown"
)

// AllowedContentTypes lists the accepted declared content types.
var AllowedContentTypes = []string{
	ContentTypeJPEG,
	ContentTypePNG,
	ContentTypePDF,
	ContentTypeMarkdown,
}

// Violation messages returned to clients. Clients match on these strings.
const (
	MsgFileTooLarge    = "File size should be less than 5MB"
	MsgUnsupportedType = "File type should be JPEG, PNG, PDF, or Markdown"
)
