package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/raushankrgupta/shoplungu/utils"
)

// ObjectOpener opens an object in a bucket
type ObjectOpener func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

// S3Source reads a JSON or YAML object addressed as s3://bucket/key
type S3Source struct {
	// Open defaults to utils.GetObject
	Open ObjectOpener
}

func (s *S3Source) CanLoad(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

func (s *S3Source) Load(ctx context.Context, uri string) (*Data, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 location %q, want s3://bucket/key", uri)
	}

	open := s.Open
	if open == nil {
		open = utils.GetObject
	}

	body, err := open(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return decode(key, raw)
}
