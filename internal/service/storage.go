package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jamaney/card-backend/config"
)

// MaxUploadSize caps individual image uploads at 5 MB.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Storage persists uploaded card media and returns a publicly reachable URL.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ValidateImageUpload rejects files that are not images or exceed the cap.
func ValidateImageUpload(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("only jpg/jpeg/png/webp files are allowed")
	}
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max 5MB)")
	}
	return nil
}

// NewUploadKey builds a unique object key preserving the file extension.
func NewUploadKey(filename string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(filename))
}

// LocalStorage writes uploads to a directory served back under /uploads.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	path := filepath.Join(l.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.baseURL + "/uploads/" + key, nil
}

// PresignTTL is how long a presigned media link stays fetchable. Links are
// minted per request, so a short window is enough.
const PresignTTL = 15 * time.Minute

// S3Storage uploads media to the configured bucket. With a public-read
// bucket the object URL is returned directly; with a private bucket the
// stored URL points back at the /media route, which redirects to a
// presigned object URL on each hit.
type S3Storage struct {
	s3cfg   *config.S3Config
	baseURL string
	private bool
}

func NewS3Storage(s3cfg *config.S3Config, baseURL string, private bool) *S3Storage {
	return &S3Storage{
		s3cfg:   s3cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		private: private,
	}
}

func (s *S3Storage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectKey := "cards/" + key
	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3cfg.BucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3cfg.BucketName, objectKey)
	if s.private {
		url = s.baseURL + "/media/" + key
	}
	log.Printf("[Storage] uploaded %s", url)
	return url, nil
}

// PresignedURL mints a short-lived object URL for one media key. Only
// meaningful in private-bucket mode, where /media redirects through it.
func (s *S3Storage) PresignedURL(ctx context.Context, key string) (string, error) {
	return s.s3cfg.GeneratePresignedURL(ctx, "cards/"+key, PresignTTL)
}
