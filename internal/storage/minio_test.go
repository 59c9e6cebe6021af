package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresEndpointAndBucket(t *testing.T) {
	_, err := New(context.Background(), Options{Bucket: "reports"})
	require.Error(t, err)

	_, err = New(context.Background(), Options{Endpoint: "minio.internal:9000"})
	require.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	c := &Client{bucket: "reports", prefix: "runs"}
	assert.Equal(t, "runs/abc-123/full_analysis_report.json",
		c.ObjectKey("abc-123", "full_analysis_report.json"))
}

func TestObjectKeyNoPrefix(t *testing.T) {
	c := &Client{bucket: "reports"}
	assert.Equal(t, "abc-123/report.html", c.ObjectKey("abc-123", "report.html"))
}

func TestObjectKeyTrimsPrefixSlashes(t *testing.T) {
	c := &Client{bucket: "reports", prefix: "/runs/"}
	assert.Equal(t, "runs/abc-123/report.json", c.ObjectKey("abc-123", "report.json"))
}

func TestContentTypeByExt(t *testing.T) {
	assert.Equal(t, "application/json", contentTypeByExt("analysis_reports/full_analysis_report.json"))
	assert.Equal(t, "text/html", contentTypeByExt("report.HTML"))
	assert.Equal(t, "text/markdown", contentTypeByExt("summary.md"))
	assert.Equal(t, "application/octet-stream", contentTypeByExt("archive.tar.zst"))
}
