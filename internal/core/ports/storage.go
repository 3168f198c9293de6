package ports

import (
	"context"
	"io"
)

// FileStorage is the port for binary blob storage (S3/MinIO). Uploaded blog
// images live behind this interface.
type FileStorage interface {
	// UploadFile stores the object under key and returns its public URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile removes the object with the given key.
	DeleteFile(ctx context.Context, key string) error
}
