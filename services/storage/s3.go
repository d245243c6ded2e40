package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Config holds configuration for any S3-compatible bucket (AWS, DigitalOcean Spaces, MinIO)
type S3Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // empty for AWS
	CDNURL    string
}

// S3Storage stores files as public-read objects
type S3Storage struct {
	client s3iface.S3API
	bucket string
	region string
	host   string
	cdnURL string
}

// NewS3Storage creates a new S3 storage client
func NewS3Storage(config S3Config) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Region:      aws.String(config.Region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Storage(s3.New(sess), config), nil
}

func newS3Storage(client s3iface.S3API, config S3Config) *S3Storage {
	host := fmt.Sprintf("s3.%s.amazonaws.com", config.Region)
	if config.Endpoint != "" {
		host = strings.TrimPrefix(strings.TrimPrefix(config.Endpoint, "https://"), "http://")
	}
	return &S3Storage{
		client: client,
		bucket: config.Bucket,
		region: config.Region,
		host:   host,
		cdnURL: strings.TrimSuffix(config.CDNURL, "/"),
	}
}

// Save uploads data under key and returns its public URL
func (s *S3Storage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.URL(key), nil
}

// Delete removes the object stored under key
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns the public URL for a key, preferring the CDN when configured
func (s *S3Storage) URL(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.host, key)
}
