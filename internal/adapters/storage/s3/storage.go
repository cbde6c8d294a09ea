package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/app/media"
	cfg "github.com/clipstream/clipstream/internal/infra/config"
)

// Storage keeps media objects in an S3-compatible bucket (MinIO in dev).
type Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func New(ctx context.Context, c *cfg.Config) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3AccessKey,
			c.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3Endpoint)
		o.UsePathStyle = true
	})

	baseURL := c.S3PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(c.S3Endpoint, "/"), c.S3Bucket)
	}

	return &Storage{
		client:  client,
		bucket:  c.S3Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func storageKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v", folder, d.Year(), d.Month(), uuid.New())
}

func (s *Storage) Upload(ctx context.Context, folder string, up media.Upload) (string, error) {
	key := storageKey(folder)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   up.Body,
	}
	if up.ContentType != "" {
		input.ContentType = aws.String(up.ContentType)
	}
	if up.Size > 0 {
		input.ContentLength = aws.Int64(up.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	return s.baseURL + "/" + key, nil
}

func (s *Storage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return fmt.Errorf("url %q is not under this bucket", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
