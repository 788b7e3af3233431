package storage_fx

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"tunitour/internal/infra"
	"tunitour/pkg/storage"
)

var Module = fx.Provide(provideBucket)

// provideBucket opens STORAGE_URL (s3://, gs://, file://, mem://) or, when it is unset, STORAGE_DIR.
func provideBucket(lc fx.Lifecycle, cfg *infra.Config, log *zap.Logger) (storage.Bucket, error) {
	bucket, err := openBucket(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.Info("object storage ready", zap.Bool("local", cfg.LocalStorage()), zap.String("public_url", cfg.StoragePublicURL))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return bucket.Close() },
	})
	return bucket, nil
}

func openBucket(ctx context.Context, cfg *infra.Config) (*storage.BlobBucket, error) {
	if !cfg.LocalStorage() {
		return storage.OpenBucket(ctx, cfg.StorageURL, cfg.StoragePublicURL)
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		return nil, err
	}
	b, err := fileblob.OpenBucket(cfg.StorageDir, nil)
	if err != nil {
		return nil, err
	}
	return storage.NewBlobBucket(b, cfg.StoragePublicURL), nil
}
