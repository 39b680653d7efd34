package bucket

import (
	"fmt"
	"path"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
)

func fileExtensionFromContentType(contentType string) string {
	contentType, _, _ = strings.Cut(contentType, ";")
	switch strings.TrimSpace(contentType) {
	case contentTypeJSON:
		return "json"
	case contentTypeCSV:
		return "csv"
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) > 1 {
			return parts[1]
		}
		return contentType
	}
}

func (b *Bucket) constructFullPath(folder, fileName, ext string) string {
	return path.Clean(path.Join(b.BaseFolder, folder, fileName) + "." + ext)
}

func (b *Bucket) getCDNURL(filePath string) string {
	if b.SubdomainEndpoint != "" {
		return fmt.Sprintf("https://%s/%s", b.SubdomainEndpoint, filePath)
	}
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, filePath)
}
