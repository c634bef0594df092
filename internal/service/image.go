package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/spizarnia/backend/config"
)

// ImageService stores scanned receipt images in S3 so the vision model can
// fetch them by URL and the user can review past scans.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		s3Config: s3Config,
	}
}

// UploadReceiptImage decodes a base64 data-URL payload, uploads it under
// receipts/<user>/<uuid> and returns the public object URL.
func (s *ImageService) UploadReceiptImage(ctx context.Context, userID uuid.UUID, dataURL string) (string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext := "jpg"
	if strings.HasSuffix(contentType, "png") {
		ext = "png"
	}
	key := fmt.Sprintf("receipts/%s/%s.%s", userID, uuid.New(), ext)

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("Uploaded receipt image for user %s (%d bytes)", userID, len(data))
	return url, nil
}

// PresignReceiptImage returns a temporary GET URL for a stored receipt.
func (s *ImageService) PresignReceiptImage(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(s.s3Config.Client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign receipt image: %w", err)
	}
	return req.URL, nil
}

// decodeDataURL splits "data:image/jpeg;base64,...." into content type and
// raw bytes. A bare base64 string defaults to JPEG.
func decodeDataURL(dataURL string) (string, []byte, error) {
	contentType := "image/jpeg"
	payload := dataURL

	if strings.HasPrefix(dataURL, "data:") {
		parts := strings.SplitN(dataURL, ",", 2)
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("malformed image data URL")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if idx := strings.Index(meta, ";"); idx > 0 {
			contentType = meta[:idx]
		}
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return contentType, data, nil
}
