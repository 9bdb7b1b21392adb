package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/storage"
)

// UploadKind selects the allow-list and size limit for an upload.
type UploadKind string

const (
	UploadResume UploadKind = "resumes"
	UploadAvatar UploadKind = "avatars"
)

type uploadRule struct {
	maxBytes int64
	allowed  map[string]bool
	message  string
}

var uploadRules = map[UploadKind]uploadRule{
	UploadResume: {
		maxBytes: 4 << 20,
		allowed:  map[string]bool{"application/pdf": true},
		message:  "Resume must be a PDF file of at most 4MB",
	},
	UploadAvatar: {
		maxBytes: 2 << 20,
		allowed: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
			"image/gif":  true,
		},
		message: "Image must be a JPEG, PNG, WebP or GIF file of at most 2MB",
	},
}

// ObjectStore persists uploaded bytes and returns their public URL.
// ObjectKey maps a public URL back to its key, reporting false for links
// the store did not issue.
type ObjectStore interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	ObjectKey(publicURL string) (string, bool)
	Delete(ctx context.Context, objectKey string) error
}

// VirusScanner rejects infected content with storage.ErrInfected.
type VirusScanner interface {
	Scan(r io.Reader) error
}

// UploadService validates files and hands them to object storage.
type UploadService interface {
	Upload(ctx context.Context, kind UploadKind, userID uint, r io.Reader) (string, error)
}

type uploadService struct {
	store   ObjectStore
	scanner VirusScanner
}

// NewUploadService creates an upload service. scanner may be nil.
func NewUploadService(store ObjectStore, scanner VirusScanner) UploadService {
	return &uploadService{store: store, scanner: scanner}
}

// Upload checks the real content type and size of r, optionally scans it,
// and stores it under <kind>/<userID>/<uuid><ext>.
func (s *uploadService) Upload(ctx context.Context, kind UploadKind, userID uint, r io.Reader) (string, error) {
	rule, ok := uploadRules[kind]
	if !ok {
		return "", apperrors.Validation("Unsupported upload type")
	}
	if s.store == nil {
		return "", apperrors.Internal(errors.New("object storage not configured"))
	}

	data, err := io.ReadAll(io.LimitReader(r, rule.maxBytes+1))
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("read upload: %w", err))
	}
	if len(data) == 0 {
		return "", apperrors.Validation("File is empty")
	}
	if int64(len(data)) > rule.maxBytes {
		return "", apperrors.Validation(rule.message)
	}

	mtype := mimetype.Detect(data)
	if !rule.allowed[mtype.String()] {
		return "", apperrors.Validation(rule.message)
	}

	if s.scanner != nil {
		if err := s.scanner.Scan(bytes.NewReader(data)); err != nil {
			if errors.Is(err, storage.ErrInfected) {
				return "", apperrors.Validation("Malicious file detected")
			}
			return "", apperrors.Internal(fmt.Errorf("scan upload: %w", err))
		}
	}

	key := fmt.Sprintf("%s/%d/%s%s", kind, userID, uuid.NewString(), mtype.Extension())
	url, err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String())
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("store upload: %w", err))
	}
	return url, nil
}
