package file

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/storage"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

var imageExts = []string{".jpg", ".jpeg", ".png"}
var documentExts = []string{".jpg", ".jpeg", ".png", ".pdf"}
var submissionExts = []string{".jpg", ".jpeg", ".png", ".pdf", ".zip", ".doc", ".docx", ".txt"}

type FileService interface {
	// UploadProfilePicture stores a user's avatar image
	UploadProfilePicture(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error)

	// UploadCoverPhoto stores the banner image shown on a user's profile
	UploadCoverPhoto(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error)

	// UploadIDCardDocument stores an ID card scan; side is "front" or "back"
	UploadIDCardDocument(ctx context.Context, userID string, side string, fh *multipart.FileHeader) (string, error)

	// UploadTaskSubmission stores the deliverable attached to a task submission
	UploadTaskSubmission(ctx context.Context, taskID string, fh *multipart.FileHeader) (string, error)

	DeleteFile(ctx context.Context, path string) error
	FileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

func validateExt(filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, allowed) {
		return "", fmt.Errorf("invalid file type %q: allowed extensions are %s", ext, strings.Join(allowed, ", "))
	}
	return ext, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

func (s *fileServiceImpl) upload(ctx context.Context, fh *multipart.FileHeader, dir, prefix string, allowed []string) (string, error) {
	ext, err := validateExt(fh.Filename, allowed)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	newFilename := fmt.Sprintf("%s-%s%s", prefix, uuid.New().String(), ext)
	path := filepath.Join(dir, newFilename)

	stored, err := s.storage.Upload(ctx, src, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return stored, nil
}

func (s *fileServiceImpl) UploadProfilePicture(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error) {
	return s.upload(ctx, fh, "profiles", userID, imageExts)
}

func (s *fileServiceImpl) UploadCoverPhoto(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error) {
	return s.upload(ctx, fh, "profiles", userID+"-cover", imageExts)
}

func (s *fileServiceImpl) UploadIDCardDocument(ctx context.Context, userID string, side string, fh *multipart.FileHeader) (string, error) {
	if side != "front" && side != "back" {
		return "", fmt.Errorf("invalid document side: %s", side)
	}
	return s.upload(ctx, fh, "documents", fmt.Sprintf("%s-%s", userID, side), documentExts)
}

func (s *fileServiceImpl) UploadTaskSubmission(ctx context.Context, taskID string, fh *multipart.FileHeader) (string, error) {
	return s.upload(ctx, fh, "submissions", taskID, submissionExts)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) FileURL(path string) string {
	return s.storage.URL(path)
}
