package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stitchline/asset-service/pkg/s3client"
)

// AssetStore adapts the S3 client to the narrow ObjectStore contract.
type AssetStore struct {
	*s3client.S3Client
}

func NewAssetStore(s3c *s3client.S3Client) *AssetStore {
	return &AssetStore{s3c}
}

func (r *AssetStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("AssetStore - Upload - r.Client.PutObject: %w", err)
	}

	return r.ObjectURL(bucket, key), nil
}

func (r *AssetStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("AssetStore - Download - r.Client.GetObject: %w", err)
	}

	return result.Body, nil
}

func (r *AssetStore) Delete(ctx context.Context, bucket, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("AssetStore - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}

func (r *AssetStore) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := r.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("AssetStore - PresignGet - r.Presign.PresignGetObject: %w", err)
	}

	return req.URL, nil
}
