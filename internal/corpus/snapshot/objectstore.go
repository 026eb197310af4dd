// Package snapshot synchronizes the SQLite course database with an
// R2/S3-compatible object store: periodic polling for new snapshots,
// leader election via a distributed lock, and zstd compression of the
// database file in transit.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// ObjectStoreConfig holds R2/S3 client configuration for snapshot storage.
type ObjectStoreConfig struct {
	Endpoint    string // e.g. https://account-id.r2.cloudflarestorage.com
	AccessKeyID string
	SecretKey   string
	BucketName  string
}

// ObjectStore provides the object storage operations snapshot sync needs:
// upload/download of the compressed corpus database and conditional writes
// for leader-lock coordination across replicas.
type ObjectStore struct {
	s3     *s3.Client
	bucket string
}

// NewObjectStore creates a new R2/S3-compatible object store client.
func NewObjectStore(ctx context.Context, cfg ObjectStoreConfig) (*ObjectStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.BucketName == "" {
		return nil, errors.New("snapshot: all object store config fields are required")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &ObjectStore{s3: s3Client, bucket: cfg.BucketName}, nil
}

// Upload uploads an object. Returns the ETag of the uploaded object.
func (c *ObjectStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := c.s3.PutObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("snapshot: upload %q: %w", key, err)
	}
	return trimEtag(result.ETag), nil
}

// Download downloads an object. Returns the body and ETag; caller must close the body.
func (c *ObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("snapshot: download %q: %w", key, err)
	}
	return result.Body, trimEtag(result.ETag), nil
}

// HeadObject retrieves the ETag of an object without downloading its body.
func (c *ObjectStore) HeadObject(ctx context.Context, key string) (string, error) {
	result, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("snapshot: head %q: %w", key, err)
	}
	return trimEtag(result.ETag), nil
}

// PutObjectIfNotExists creates an object only if absent (If-None-Match: *).
func (c *ObjectStore) PutObjectIfNotExists(ctx context.Context, key string, body io.Reader, contentType string) (bool, string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		IfNoneMatch: aws.String("*"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := c.s3.PutObject(ctx, input)
	if err != nil {
		if isPreconditionFailed(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("snapshot: put if not exists %q: %w", key, err)
	}
	return true, trimEtag(result.ETag), nil
}

// PutObjectIfMatch updates an object only if its ETag matches (If-Match).
func (c *ObjectStore) PutObjectIfMatch(ctx context.Context, key string, body io.Reader, etag, contentType string) (bool, string, error) {
	input := &s3.PutObjectInput{
		Bucket:  aws.String(c.bucket),
		Key:     aws.String(key),
		Body:    body,
		IfMatch: aws.String("\"" + etag + "\""),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := c.s3.PutObject(ctx, input)
	if err != nil {
		if isPreconditionFailed(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("snapshot: put if match %q: %w", key, err)
	}
	return true, trimEtag(result.ETag), nil
}

// DeleteObject deletes an object.
func (c *ObjectStore) DeleteObject(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("snapshot: delete %q: %w", key, err)
	}
	return nil
}

func trimEtag(etag *string) string {
	if etag == nil {
		return ""
	}
	return strings.Trim(*etag, "\"")
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
		return true
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 412 {
		return true
	}
	return strings.Contains(err.Error(), "PreconditionFailed")
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}

// ErrNotFound is returned when a snapshot or lock object does not exist.
var ErrNotFound = errors.New("snapshot: object not found")

// LockInfo describes who holds a distributed lock and until when.
type LockInfo struct {
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DistributedLock coordinates snapshot-writer leadership across replicas
// using conditional writes against the object store.
type DistributedLock struct {
	store   *ObjectStore
	key     string
	ttl     time.Duration
	ownerID string
	etag    string
}

// NewDistributedLock creates a distributed lock bound to key in store.
func NewDistributedLock(store *ObjectStore, key string, ttl time.Duration) *DistributedLock {
	return &DistributedLock{
		store:   store,
		key:     key,
		ttl:     ttl,
		ownerID: uuid.New().String(),
	}
}

// Acquire attempts to take the lock, stealing it if the existing holder's
// lease has expired. Returns (true, nil) only when this call took the lock.
func (l *DistributedLock) Acquire(ctx context.Context) (bool, error) {
	info := LockInfo{Owner: l.ownerID, ExpiresAt: time.Now().Add(l.ttl)}
	data, err := json.Marshal(info)
	if err != nil {
		return false, fmt.Errorf("acquire lock: marshal: %w", err)
	}

	created, etag, err := l.store.PutObjectIfNotExists(ctx, l.key, bytes.NewReader(data), "application/json")
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	if created {
		l.etag = etag
		return true, nil
	}

	expired, oldEtag, err := l.checkExpired(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire lock: check expired: %w", err)
	}
	if !expired {
		return false, nil
	}

	stolen, newEtag, err := l.steal(ctx, oldEtag)
	if err != nil {
		return false, fmt.Errorf("acquire lock: steal: %w", err)
	}
	if stolen {
		l.etag = newEtag
		return true, nil
	}
	return false, nil
}

// Renew extends the lease if this instance still owns the lock.
func (l *DistributedLock) Renew(ctx context.Context) (bool, error) {
	if l.etag == "" {
		return false, nil
	}

	info := LockInfo{Owner: l.ownerID, ExpiresAt: time.Now().Add(l.ttl)}
	data, err := json.Marshal(info)
	if err != nil {
		return false, fmt.Errorf("renew lock: marshal: %w", err)
	}

	updated, newEtag, err := l.store.PutObjectIfMatch(ctx, l.key, bytes.NewReader(data), l.etag, "application/json")
	if err != nil {
		return false, fmt.Errorf("renew lock: %w", err)
	}
	if !updated {
		return false, nil
	}
	l.etag = newEtag
	return true, nil
}

func (l *DistributedLock) checkExpired(ctx context.Context) (bool, string, error) {
	body, etag, err := l.store.Download(ctx, l.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, "", nil
		}
		return false, "", err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return false, "", fmt.Errorf("read lock: %w", err)
	}

	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return true, etag, nil
	}
	return time.Now().After(info.ExpiresAt), etag, nil
}

func (l *DistributedLock) steal(ctx context.Context, oldEtag string) (bool, string, error) {
	info := LockInfo{Owner: l.ownerID, ExpiresAt: time.Now().Add(l.ttl)}
	data, err := json.Marshal(info)
	if err != nil {
		return false, "", fmt.Errorf("marshal: %w", err)
	}
	return l.store.PutObjectIfMatch(ctx, l.key, bytes.NewReader(data), oldEtag, "application/json")
}

// Release releases the lock, but only if this instance still owns it.
func (l *DistributedLock) Release(ctx context.Context) error {
	body, _, err := l.store.Download(ctx, l.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("release lock: verify: %w", err)
	}

	data, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil {
		return fmt.Errorf("release lock: read: %w", err)
	}

	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return l.store.DeleteObject(ctx, l.key)
	}
	if info.Owner != l.ownerID {
		return nil
	}
	return l.store.DeleteObject(ctx, l.key)
}

// OwnerID returns this lock instance's unique identifier.
func (l *DistributedLock) OwnerID() string {
	return l.ownerID
}

// CompressFile zstd-compresses srcPath into dstPath.
func CompressFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("compress: open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("compress: create dest: %w", err)
	}
	defer func() { _ = dst.Close() }()

	encoder, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("compress: create encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("compress: copy: %w", err)
	}

	return encoder.Close()
}

// DecompressStream streams a zstd-compressed reader into dstPath.
func DecompressStream(r io.Reader, dstPath string) error {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("decompress: create decoder: %w", err)
	}
	defer decoder.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("decompress: create dest: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, decoder); err != nil {
		return fmt.Errorf("decompress: copy: %w", err)
	}
	return nil
}
