package domain

import "time"

// Session is the verified identity of a caller. Nothing in the upload
// pipeline looks past whether one is present.
type Session struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	TokenID   string    `json:"jti"`
	ExpiresAt time.Time `json:"exp"`
}

// CandidateFile is the file part extracted from an upload request, fully
// buffered so its size is known before it is sent to storage. A part already
// known to exceed the size limit is not buffered; Data stays nil and
// DeclaredSize carries its length.
type CandidateFile struct {
	Name         string
	ContentType  string
	Data         []byte
	DeclaredSize int64
}

// Size returns the payload length in bytes.
func (f *CandidateFile) Size() int64 {
	if f.Data == nil {
		return f.DeclaredSize
	}
	return int64(len(f.Data))
}
