package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignedImageExpiry = 24 * time.Hour

// StorageService stores product images in S3-compatible storage.
type StorageService struct {
	client     *minio.Client
	bucketName string
	region     string
}

// ImageUploadResult describes a stored product image. URL is presigned
// and suitable for handing straight to a product create request.
type ImageUploadResult struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// NewStorageService creates a new S3 storage service
func NewStorageService(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &StorageService{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// UploadProductImage stores an image under the user's prefix and returns
// a presigned URL for it. The original filename only contributes its
// extension.
func (s *StorageService) UploadProductImage(ctx context.Context, userID int, filename string, reader io.Reader, size int64, contentType string) (*ImageUploadResult, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("users/%d/products/%s%s", userID, uuid.NewString(), ext)

	info, err := s.client.PutObject(ctx, s.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	url, err := s.PresignedImageURL(ctx, key)
	if err != nil {
		return nil, err
	}

	return &ImageUploadResult{
		Key:  info.Key,
		Size: info.Size,
		URL:  url,
	}, nil
}

// PresignedImageURL generates a presigned URL for a stored image.
func (s *StorageService) PresignedImageURL(ctx context.Context, key string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, key, presignedImageExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// DeleteImage deletes a stored image
func (s *StorageService) DeleteImage(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}
