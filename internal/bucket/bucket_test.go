package bucket

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExtensionFromContentType(t *testing.T) {
	assert.Equal(t, "json", fileExtensionFromContentType("application/json"))
	assert.Equal(t, "json", fileExtensionFromContentType("application/json; charset=utf-8"))
	assert.Equal(t, "csv", fileExtensionFromContentType("text/csv"))
	assert.Equal(t, "xml", fileExtensionFromContentType("application/xml"))
	assert.Equal(t, "bin", fileExtensionFromContentType("bin"))
}

func TestConstructFullPath(t *testing.T) {
	b := &Bucket{Config: &Config{
		S3Endpoint:   "fra1.digitaloceanspaces.com",
		S3BucketName: "grbpwr",
		BaseFolder:   "analytics",
	}}
	fp := b.constructFullPath("exports/sales", "20240315T120000Z-abc", "json")
	assert.Equal(t, "analytics/exports/sales/20240315T120000Z-abc.json", fp)
	assert.Equal(t, "https://grbpwr.fra1.digitaloceanspaces.com/"+fp, b.getCDNURL(fp))

	b.SubdomainEndpoint = "files.grbpwr.com"
	assert.Equal(t, "https://files.grbpwr.com/"+fp, b.getCDNURL(fp))
}

func TestConfigEnabled(t *testing.T) {
	var c *Config
	assert.False(t, c.Enabled())
	assert.False(t, (&Config{S3Endpoint: "fra1.digitaloceanspaces.com"}).Enabled())
	assert.True(t, (&Config{S3Endpoint: "fra1.digitaloceanspaces.com", S3BucketName: "grbpwr"}).Enabled())
}

// TestUploadExport talks to real storage configured through S3_* variables.
func TestUploadExport(t *testing.T) {
	if os.Getenv("S3_ENDPOINT") == "" {
		t.Skip("S3_ENDPOINT is not set")
	}
	c := &Config{
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3BucketName:      os.Getenv("S3_BUCKET_NAME"),
		S3BucketLocation:  os.Getenv("S3_BUCKET_LOCATION"),
		BaseFolder:        "analytics-test",
	}
	b, err := c.New()
	require.NoError(t, err)

	url, err := b.UploadExport(context.Background(), []byte(`{"ok":true}`), "exports/test", "upload", "application/json")
	require.NoError(t, err)
	assert.Contains(t, url, "analytics-test/exports/test/upload.json")
}
