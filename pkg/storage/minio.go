// Package storage holds the tender document binaries in an S3-compatible
// bucket. Objects live under slot prefixes (summaries/, admin/, tech/) and
// the public URL returned at upload time is stored verbatim on the tender
// record.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Slot prefixes inside the bucket, one per document slot.
const (
	PrefixSummary = "summaries"
	PrefixAdmin   = "admin"
	PrefixTech    = "tech"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type ObjectStore struct {
	client *minio.Client
	bucket string
	cfg    Config
}

func NewObjectStore(cfg Config) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &ObjectStore{client: client, bucket: cfg.Bucket, cfg: cfg}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("storage: create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores a document under the given slot prefix and returns its public
// URL. Object keys carry the upload timestamp and a sanitized original
// filename.
func (s *ObjectStore) Upload(ctx context.Context, prefix, fileName, contentType string, data []byte) (string, error) {
	objectName := ObjectName(prefix, fileName, time.Now())
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", objectName, err)
	}
	return s.PublicUrl(objectName), nil
}

// Download fetches a stored object back by its public URL, returning the
// bytes and the stored content type.
func (s *ObjectStore) Download(ctx context.Context, publicUrl string) ([]byte, string, error) {
	objectName, ok := s.objectNameFromUrl(publicUrl)
	if !ok {
		return nil, "", fmt.Errorf("storage: url %q is outside the bucket", publicUrl)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("storage: get %s: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", fmt.Errorf("storage: read %s: %w", objectName, err)
	}

	contentType := "application/octet-stream"
	if stat, err := obj.Stat(); err == nil && stat.ContentType != "" {
		contentType = stat.ContentType
	}
	return data, contentType, nil
}

// Delete removes one stored object identified by its public URL. URLs that do
// not point into this bucket are ignored.
func (s *ObjectStore) Delete(ctx context.Context, publicUrl string) error {
	objectName, ok := s.objectNameFromUrl(publicUrl)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", objectName, err)
	}
	return nil
}

// PublicUrl builds the public URL for an object, assuming a public-read
// bucket policy.
func (s *ObjectStore) PublicUrl(objectName string) string {
	protocol := "http"
	if s.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.cfg.Endpoint, s.bucket, objectName)
}

func (s *ObjectStore) objectNameFromUrl(publicUrl string) (string, bool) {
	u, err := url.Parse(publicUrl)
	if err != nil {
		return "", false
	}
	marker := "/" + s.bucket + "/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", false
	}
	return u.Path[idx+len(marker):], true
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectName builds the storage key for a document: slot prefix, upload
// timestamp and sanitized original filename.
func ObjectName(prefix, fileName string, uploadedAt time.Time) string {
	return fmt.Sprintf("%s/%d_%s", prefix, uploadedAt.Unix(), SanitizeFileName(fileName))
}

// SanitizeFileName reduces a user-supplied filename to a storage-safe form.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "document.pdf"
	}
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "document.pdf"
	}
	return name
}
