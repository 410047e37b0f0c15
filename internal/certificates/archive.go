package certificates

import (
	"bytes"
	"context"
	"fmt"

	"mnch-training-tracker/certificates-backend/pkg/storage"
)

// S3Archive keeps a copy of each issued document in object storage. The
// ledger record stays the source of truth; the archive is a convenience copy
// since documents are regenerable.
type S3Archive struct {
	client storage.S3Client
	bucket string
}

func NewS3Archive(client storage.S3Client, bucket string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket}
}

func (a *S3Archive) Archive(ctx context.Context, certificateID string, document []byte) error {
	key := fmt.Sprintf("certificates/%s.pdf", certificateID)
	return a.client.Upload(ctx, a.bucket, key, bytes.NewReader(document))
}
