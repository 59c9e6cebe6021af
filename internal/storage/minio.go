// Package storage uploads finished reports to an S3-compatible bucket so
// other jobs and dashboards can fetch them without filesystem access.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the bucket connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// Client wraps a connection to one bucket.
type Client struct {
	mc     *minio.Client
	bucket string
	prefix string
}

// New connects to the endpoint and ensures the bucket exists.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("storage: endpoint and bucket are required")
	}

	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect %s: %w", opts.Endpoint, err)
	}

	exists, err := mc.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("storage: create bucket %s: %w", opts.Bucket, err)
		}
	}

	return &Client{mc: mc, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

// UploadReport stores the report file under <prefix>/<runID>/<basename>
// and returns the object key.
func (c *Client) UploadReport(ctx context.Context, runID, path string) (string, error) {
	key := c.ObjectKey(runID, filepath.Base(path))
	_, err := c.mc.FPutObject(ctx, c.bucket, key, path, minio.PutObjectOptions{
		ContentType: contentTypeByExt(path),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", path, err)
	}
	return key, nil
}

// ObjectKey builds the object name for a run artifact.
func (c *Client) ObjectKey(runID, name string) string {
	var parts []string
	if c.prefix != "" {
		parts = append(parts, strings.Trim(c.prefix, "/"))
	}
	parts = append(parts, runID, name)
	return strings.Join(parts, "/")
}

func contentTypeByExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	case ".md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
