package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3 S3 兼容对象存储，配置 endpoint 时按 MinIO 路径风格访问
type S3 struct {
	client *s3.S3
	bucket string
}

// NewS3 创建 S3 存储并确保 bucket 存在
func NewS3(cfg config.S3Config) (*S3, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	awsConfig := &aws.Config{
		Region:      aws.String(regionOrDefault(cfg.Region)),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		awsConfig.Endpoint = aws.String(endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!cfg.UseSSL)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	store := &S3{client: s3.New(sess), bucket: bucket}

	if _, err := store.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if _, createErr := store.client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(bucket)}); createErr != nil {
			logger.Warnw("s3_bucket_ensure_failed", "bucket", bucket, "error", createErr)
		}
	}
	return store, nil
}

func (s *S3) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		return fmt.Errorf("delete from s3: %w", err)
	}
	return nil
}

func (s *S3) objectURL(key string) string {
	return buildObjectURL(
		aws.StringValue(s.client.Config.Endpoint),
		aws.BoolValue(s.client.Config.DisableSSL),
		aws.StringValue(s.client.Config.Region),
		s.bucket,
		key,
	)
}

func buildObjectURL(endpoint string, disableSSL bool, region, bucket, key string) string {
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		scheme := "https"
		if disableSSL {
			scheme = "http"
		}
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
		return fmt.Sprintf("%s://%s/%s/%s", scheme, strings.TrimSuffix(host, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, regionOrDefault(region), key)
}

func regionOrDefault(region string) string {
	if strings.TrimSpace(region) == "" {
		return "us-east-1"
	}
	return strings.TrimSpace(region)
}
