package utils

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/shoplungu/config"
)

var (
	S3Client      *s3.Client
	PresignClient *s3.PresignClient

	s3Once sync.Once
	s3Err  error
)

// InitS3 initializes the S3 client once
func InitS3(ctx context.Context) error {
	s3Once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(appConfig.AWSRegion),
		)
		if err != nil {
			s3Err = fmt.Errorf("unable to load SDK config: %w", err)
			return
		}

		S3Client = s3.NewFromConfig(cfg)
		PresignClient = s3.NewPresignClient(S3Client)
	})
	return s3Err
}

// GetObject opens an object for reading. The caller closes the body.
func GetObject(ctx context.Context, bucket, objectKey string) (io.ReadCloser, error) {
	if err := InitS3(ctx); err != nil {
		return nil, err
	}

	out, err := S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, objectKey, err)
	}
	return out.Body, nil
}

// GetPresignedURL generates a presigned URL for an object in the image bucket
func GetPresignedURL(ctx context.Context, objectKey string) (string, error) {
	if appConfig.AWSBucketName == "" {
		return "", fmt.Errorf("AWS_BUCKET_NAME is not set")
	}
	if err := InitS3(ctx); err != nil {
		return "", err
	}

	request, err := PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(appConfig.AWSBucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return request.URL, nil
}
