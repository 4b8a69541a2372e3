package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/storage"
)

// Upload rejections, mapped to 4xx responses by the API
var (
	ErrUnknownBucket   = errors.New("unknown bucket")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// sniffLen is how much of the file is read to detect its type
const sniffLen = 3072

type bucketRule struct {
	mediaType string // "image" or "video"
	maxSize   int64
}

// uploadService is the concrete implementation of UploadService
type uploadService struct {
	store   storage.Store
	buckets map[string]bucketRule
	now     func() time.Time
	log     zerolog.Logger
}

// newUploadService creates a new UploadService
func newUploadService(store storage.Store, cfg config.StorageConfig, log zerolog.Logger) *uploadService {
	return &uploadService{
		store: store,
		buckets: map[string]bucketRule{
			"workshop-images":  {mediaType: "image", maxSize: cfg.MaxImageSize},
			"workshop-updates": {mediaType: "image", maxSize: cfg.MaxImageSize},
			"workshop-videos":  {mediaType: "video", maxSize: cfg.MaxVideoSize},
		},
		now: time.Now,
		log: log.With().Str("service", "upload").Logger(),
	}
}

// Upload checks size and sniffed content type, then hands the file to the
// store under a fresh name. size is the client-declared length; the stream
// is cut at the bucket limit regardless.
func (s *uploadService) Upload(ctx context.Context, bucket, filename string, size int64, r io.Reader) (*models.Upload, error) {
	rule, ok := s.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	if size > rule.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, size, rule.maxSize)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrEmptyFile
	}

	mtype := mimetype.Detect(head)
	contentType, _, _ := strings.Cut(mtype.String(), ";")
	if !strings.HasPrefix(contentType, rule.mediaType+"/") {
		return nil, fmt.Errorf("%w: %s, want %s/*", ErrUnsupportedType, contentType, rule.mediaType)
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	name := objectName(s.now(), ext)

	counter := &countingReader{r: io.MultiReader(bytes.NewReader(head), r), limit: rule.maxSize}
	url, err := s.store.Upload(ctx, bucket, name, contentType, counter)
	if err != nil {
		if counter.exceeded {
			return nil, fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, rule.maxSize)
		}
		return nil, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().
		Str("bucket", bucket).
		Str("name", name).
		Str("content_type", contentType).
		Int64("size", counter.n).
		Msg("File uploaded")

	return &models.Upload{
		URL:         url,
		Bucket:      bucket,
		Name:        name,
		ContentType: contentType,
		Size:        counter.n,
	}, nil
}

// objectName builds "<8 hex>-<unix millis><ext>"
func objectName(now time.Time, ext string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%d%s", id[:8], now.UnixMilli(), ext)
}

// countingReader counts bytes and fails once more than limit have been read
type countingReader struct {
	r        io.Reader
	n        int64
	limit    int64
	exceeded bool
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.limit {
		c.exceeded = true
		return n, ErrFileTooLarge
	}
	return n, err
}
