package kubeconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ObjectStore is the part of the S3 client used for uploads.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
}

// Upload stores the kubeconfig as bucket/key, creating the bucket when missing.
func (k *Kubeconfig) Upload(ctx context.Context, store ObjectStore, bucket, key string) error {
	if bucket == "" || key == "" {
		return errors.New("both bucket and key are required for the upload")
	}

	if err := store.EnsureBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to prepare bucket: %w", err)
	}
	if err := store.PutObject(ctx, bucket, key, ContentType, k.Raw); err != nil {
		return err
	}

	logr.FromContextOrDiscard(ctx).Info("kubeconfig uploaded", "bucket", bucket, "key", key)
	return nil
}
