// Package archive stores the raw statement payloads fetched from the
// bank as GCS objects, one per export run, so a statement can be
// re-mapped later without touching the bank API again.
package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/storage"
)

// Store writes and reads raw payloads in one GCS bucket. It assumes
// Application Default Credentials are configured.
type Store struct {
	client *storage.Client
	bucket string
}

// NewStore opens a shared storage client for the bucket.
func NewStore(ctx context.Context, bucket string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: creating storage client: %w", err)
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Close closes the underlying storage client.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// SaveRawStatement uploads the payload bytes under the given object name
// and returns the gs:// URI of the stored object.
func (s *Store) SaveRawStatement(ctx context.Context, objectName string, payload []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("archive: writing object %q: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("archive: finalizing object %q: %w", objectName, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// Fetch downloads an archived payload by its gs:// URI.
func (s *Store) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := splitURI(uri)
	if err != nil {
		return nil, err
	}
	rc, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: reading %s: %w", uri, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: reading %s: %w", uri, err)
	}
	return data, nil
}

// ObjectName builds the date-stamped object name for one export run:
// statements/<accountID>/<from>_<to>_<runID>.json
func ObjectName(accountID string, from, to civil.Date, runID string) string {
	return path.Join("statements", accountID,
		fmt.Sprintf("%s_%s_%s.json", from, to, runID))
}

func splitURI(uri string) (bucket, object string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("archive: invalid GCS URI %q", uri)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("archive: GCS URI %q has no object path", uri)
	}
	return parts[0], parts[1], nil
}
