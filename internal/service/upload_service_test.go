package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/storage"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
)

type stubScanner struct{ err error }

func (s stubScanner) Scan(io.Reader) error { return s.err }

func TestUploadService_Upload(t *testing.T) {
	tests := []struct {
		name         string
		kind         UploadKind
		data         []byte
		scanner      VirusScanner
		setupMock    func(*MockObjectStore)
		wantURL      string
		expectedKind apperrors.Kind
		expectError  bool
	}{
		{
			name: "resume pdf",
			kind: UploadResume,
			data: pdfBytes,
			setupMock: func(m *MockObjectStore) {
				m.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "resumes/7/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, int64(len(pdfBytes)), "application/pdf").Return("https://cdn.example.com/uploads/resumes/7/x.pdf", nil)
			},
			wantURL: "https://cdn.example.com/uploads/resumes/7/x.pdf",
		},
		{
			name: "avatar png",
			kind: UploadAvatar,
			data: pngBytes,
			setupMock: func(m *MockObjectStore) {
				m.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "avatars/7/") && strings.HasSuffix(key, ".png")
				}), mock.Anything, int64(len(pngBytes)), "image/png").Return("https://cdn.example.com/a.png", nil)
			},
			wantURL: "https://cdn.example.com/a.png",
		},
		{
			name:         "resume must be pdf",
			kind:         UploadResume,
			data:         pngBytes,
			setupMock:    func(m *MockObjectStore) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "avatar too large",
			kind:         UploadAvatar,
			data:         append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 2<<20)...),
			setupMock:    func(m *MockObjectStore) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "infected file",
			kind:         UploadResume,
			data:         pdfBytes,
			scanner:      stubScanner{err: storage.ErrInfected},
			setupMock:    func(m *MockObjectStore) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "scanner unavailable",
			kind:         UploadResume,
			data:         pdfBytes,
			scanner:      stubScanner{err: errors.New("dial tcp: connection refused")},
			setupMock:    func(m *MockObjectStore) {},
			expectError:  true,
			expectedKind: apperrors.KindInternal,
		},
		{
			name:         "empty file",
			kind:         UploadAvatar,
			data:         nil,
			setupMock:    func(m *MockObjectStore) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockObjectStore)
			tt.setupMock(store)

			svc := NewUploadService(store, tt.scanner)
			url, err := svc.Upload(context.Background(), tt.kind, 7, bytes.NewReader(tt.data))

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
			store.AssertExpectations(t)
		})
	}
}
