package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/tahcohcat/maitre/internal/logger"
)

// FetchFromBucket downloads the recorded voice sample from Google
// Cloud Storage into the samples directory and returns the local path.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
func (m *Manager) FetchFromBucket(ctx context.Context, bucket, object string) (string, error) {
	if bucket == "" || object == "" {
		return "", fmt.Errorf("bucket and object path are required (set GCS_BUCKET_NAME and GCS_VOICE_SAMPLE_PATH)")
	}

	log := logger.New()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create storage client, check GOOGLE_APPLICATION_CREDENTIALS: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return "", fmt.Errorf("bucket %q not found, verify GCS_BUCKET_NAME: %w", bucket, err)
		}
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", fmt.Errorf("voice sample %q not found in bucket %q, verify GCS_VOICE_SAMPLE_PATH: %w", object, bucket, err)
		}
		return "", fmt.Errorf("failed to open gs://%s/%s: %w", bucket, object, err)
	}
	defer reader.Close()

	localPath := filepath.Join(m.dir, filepath.Base(object))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer out.Close()

	n, err := io.Copy(out, reader)
	if err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("failed to download voice sample: %w", err)
	}

	log.Info(fmt.Sprintf("Downloaded voice sample gs://%s/%s (%d bytes)", bucket, object, n))
	return localPath, nil
}
