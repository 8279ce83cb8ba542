package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// listAPI is the subset of the S3 client used for listing. Matches the
// SDK's ListObjectsV2 signature so *s3.Client satisfies it directly.
type listAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// downloadAPI is the subset of the s3 transfer manager used for
// fetching one object into a local file.
type downloadAPI interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Store implements ObjectStore against Amazon S3.
type S3Store struct {
	client     listAPI
	downloader downloadAPI
}

// NewS3Store creates an S3-backed store using the default AWS credential
// and region resolution chain.
func NewS3Store(ctx context.Context) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:     client,
		downloader: manager.NewDownloader(client),
	}, nil
}

// ListInvoices pages through ListObjectsV2 with continuation tokens
// until the response is no longer truncated, keeping only eligible keys.
func (s *S3Store) ListInvoices(ctx context.Context, bucket, prefix string) ([]string, error) {
	var (
		keys  []string
		seen  = make(map[string]struct{})
		token *string
	)

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list objects in s3://%s/%s: %w", bucket, prefix, err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !Eligible(key) {
				slog.Debug("skipping non-invoice key", "key", key)
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	return keys, nil
}

// Download fetches s3://bucket/key into destPath.
func (s *S3Store) Download(ctx context.Context, bucket, key, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := s.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
