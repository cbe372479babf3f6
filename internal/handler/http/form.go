package http

import (
	"mime/multipart"
	"net/http"
	"strings"
)

// maxUploadSize caps multipart parsing memory at 10 MiB; larger files spill
// to disk per net/http semantics.
const maxUploadSize = 10 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formValue returns a pointer to the form field, or nil when absent.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// formFile returns the first uploaded file for the field, or nil when absent.
func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files, ok := r.MultipartForm.File[key]
	if !ok || len(files) == 0 {
		return nil
	}
	return files[0]
}
