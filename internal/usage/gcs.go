package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSSink stores each report as a JSON object in a Cloud Storage bucket.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink creates a Cloud Storage sink. Reports land under prefix/<until>.json.
func NewGCSSink(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSSink, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &GCSSink{
		client: client,
		bucket: bucket,
		prefix: "usage",
	}, nil
}

// ObjectName returns the object path for a report.
func (s *GCSSink) ObjectName(report Report) string {
	return fmt.Sprintf("%s/%s.json", s.prefix, report.Until.UTC().Format(time.RFC3339))
}

func (s *GCSSink) Write(ctx context.Context, report Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	obj := s.client.Bucket(s.bucket).Object(s.ObjectName(report))
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing report to gs://%s: %w", s.bucket, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing report writer for gs://%s: %w", s.bucket, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}
