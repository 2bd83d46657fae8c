package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/insightlab/meeting-insights/internal/infrastructure/storage"
)

// Fetcher retrieves dataset files by name
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// ObjectFetcher reads dataset files from object storage under a prefix,
// retrying transient failures with exponential backoff.
type ObjectFetcher struct {
	store   *storage.MinIOClient
	prefix  string
	retries int
}

func NewObjectFetcher(store *storage.MinIOClient, prefix string, retries int) *ObjectFetcher {
	if retries <= 0 {
		retries = 3
	}
	return &ObjectFetcher{store: store, prefix: prefix, retries: retries}
}

func (f *ObjectFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	objectName := name
	if f.prefix != "" {
		objectName = f.prefix + "/" + name
	}

	var data []byte
	operation := func() error {
		var err error
		data, err = f.store.DownloadFile(ctx, objectName)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(f.retries)), ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", objectName, err)
	}
	return data, nil
}

// LocalFetcher reads dataset files from a directory on disk, for development
// and seeding.
type LocalFetcher struct {
	dir string
}

func NewLocalFetcher(dir string) *LocalFetcher {
	return &LocalFetcher{dir: dir}
}

func (f *LocalFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, filepath.Clean(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	return data, nil
}
