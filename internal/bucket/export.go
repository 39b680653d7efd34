package bucket

import (
	"bytes"
	"context"
	"fmt"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/minio/minio-go/v7"
)

var _ dependency.Exporter = (*Bucket)(nil)

// UploadExport stores a report snapshot as a public object and returns its URL.
func (b *Bucket) UploadExport(ctx context.Context, payload []byte, folder, name, contentType string) (string, error) {
	userMetaData := map[string]string{"x-amz-acl": "public-read"}

	fp := b.constructFullPath(folder, name, fileExtensionFromContentType(contentType))
	r := bytes.NewReader(payload)

	ui, err := b.Client.PutObject(ctx, b.S3BucketName, fp,
		r, int64(r.Len()),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "no-cache",
			UserMetadata: userMetaData,
		})
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload export object",
			slog.String("path", fp),
			slog.String("err", err.Error()))
		return "", fmt.Errorf("can't upload export: %w", err)
	}
	slog.Default().InfoContext(ctx, "export uploaded",
		slog.String("key", ui.Key),
		slog.Int64("size", ui.Size))
	return b.getCDNURL(fp), nil
}
