package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Bucket is the object storage used for image assets. Only the public URL is persisted.
type Bucket interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
}

var ErrInvalidPath = errors.New("storage: invalid object path")

// BlobBucket stores objects in any gocloud.dev/blob driver registered by the caller
// (file://, s3://, gs://, mem://). Public URLs are built from a fixed base.
type BlobBucket struct {
	bucket    *blob.Bucket
	publicURL string
}

// OpenBucket opens storageURL through the blob URL mux.
func OpenBucket(ctx context.Context, storageURL, publicURL string) (*BlobBucket, error) {
	b, err := blob.OpenBucket(ctx, storageURL)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", storageURL, err)
	}
	return NewBlobBucket(b, publicURL), nil
}

func NewBlobBucket(b *blob.Bucket, publicURL string) *BlobBucket {
	return &BlobBucket{bucket: b, publicURL: strings.TrimRight(publicURL, "/")}
}

func (b *BlobBucket) Close() error { return b.bucket.Close() }

// objectKey cleans the path so ".." never leaves the bucket prefix.
func objectKey(objectPath string) (string, error) {
	key := strings.TrimPrefix(path.Clean("/"+objectPath), "/")
	if key == "" {
		return "", ErrInvalidPath
	}
	return key, nil
}

// Upload writes the whole object or nothing: a failing reader aborts the write.
func (b *BlobBucket) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	key, err := objectKey(objectPath)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := b.bucket.NewWriter(wctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storage: open writer: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("storage: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: commit object: %w", err)
	}
	return nil
}

// Remove ignores objects that are already gone.
func (b *BlobBucket) Remove(ctx context.Context, objectPaths ...string) error {
	var errs []error
	for _, p := range objectPaths {
		key, err := objectKey(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
			errs = append(errs, fmt.Errorf("storage: remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (b *BlobBucket) PublicURL(objectPath string) string {
	clean := strings.TrimPrefix(path.Clean("/"+objectPath), "/")
	segments := strings.Split(clean, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return b.publicURL + "/" + strings.Join(segments, "/")
}
