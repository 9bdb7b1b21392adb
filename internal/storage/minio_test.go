package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	c := &Client{bucketName: "uploads", publicBase: "https://cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/uploads/resumes/1/a.pdf", c.PublicURL("/resumes/1/a.pdf"))
}

func TestIsNoSuchKey(t *testing.T) {
	assert.True(t, IsNoSuchKey(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, IsNoSuchKey(errors.New("The specified key does not exist.")))
	assert.False(t, IsNoSuchKey(errors.New("connection reset")))
	assert.False(t, IsNoSuchKey(nil))
}

func TestObjectKey(t *testing.T) {
	c := &Client{bucketName: "uploads", publicBase: "https://cdn.example.com"}

	tests := []struct {
		name        string
		url         string
		expectedKey string
		expectOK    bool
	}{
		{name: "issued url", url: c.PublicURL("avatars/1/a.png"), expectedKey: "avatars/1/a.png", expectOK: true},
		{name: "other host", url: "https://gravatar.example.org/uploads/avatars/1/a.png"},
		{name: "other bucket", url: "https://cdn.example.com/private/avatars/1/a.png"},
		{name: "bucket root", url: "https://cdn.example.com/uploads/"},
		{name: "path traversal", url: "https://cdn.example.com/uploads/avatars/1/../../resumes/2/cv.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := c.ObjectKey(tt.url)
			assert.Equal(t, tt.expectOK, ok)
			assert.Equal(t, tt.expectedKey, key)
		})
	}
}

func TestDeleteBlankKeyIsNoop(t *testing.T) {
	c := &Client{bucketName: "uploads", publicBase: "https://cdn.example.com"}
	assert.NoError(t, c.Delete(context.Background(), "  "))
}
