package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/storage"
	"github.com/teamjokbo/jokbo/internal/validation"
)

// signedURL is one cached presigned link.
type signedURL struct {
	url       string
	expiresAt time.Time
}

// AttachmentService uploads entry attachments and mints the time-limited
// signed URLs clients use to fetch them back. Minted URLs are cached in
// memory; the cache is rebuilt on restart and refreshed on demand, never by
// a background timer.
type AttachmentService struct {
	storage    storage.Storage
	bulkTTL    time.Duration
	refreshTTL time.Duration

	mu    sync.RWMutex
	cache map[string]signedURL
}

func NewAttachmentService(st storage.Storage, bulkTTL, refreshTTL time.Duration) *AttachmentService {
	return &AttachmentService{
		storage:    st,
		bulkTTL:    bulkTTL,
		refreshTTL: refreshTTL,
		cache:      make(map[string]signedURL),
	}
}

// Upload stores each staged file and returns its metadata in order. The
// whole batch is size-checked before any storage call, and the first storage
// failure aborts the batch with the backend error.
func (s *AttachmentService) Upload(ctx context.Context, teamID string, headers []*multipart.FileHeader) (model.AttachmentList, error) {
	for _, header := range headers {
		err := validation.ValidateAttachmentSize(header)
		if err != nil {
			return nil, err
		}
	}

	attachments := make(model.AttachmentList, 0, len(headers))
	for _, header := range headers {
		key := buildKey(teamID, header.Filename)

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %q: %w", header.Filename, err)
		}

		err = s.storage.Save(ctx, key, file)
		closeErr := file.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			slog.Warn("failed to close uploaded file", "error", closeErr, "name", header.Filename)
		}

		attachments = append(attachments, model.Attachment{
			Name: header.Filename,
			Key:  key,
			Size: header.Size,
		})
	}

	return attachments, nil
}

// buildKey constructs a unique storage key: team scope, upload time, random
// token, sanitized original name.
func buildKey(teamID, filename string) string {
	return fmt.Sprintf("%s/%d-%s-%s",
		teamID,
		time.Now().UnixMilli(),
		uuid.New().String(),
		validation.SanitizeFilename(filename),
	)
}

// SignedURLs mints one signed URL per key with the bulk TTL. Keys that fail
// to sign are omitted from the result; only successes populate the map.
func (s *AttachmentService) SignedURLs(ctx context.Context, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		url, err := s.signedURL(ctx, key, s.bulkTTL)
		if err != nil {
			slog.Warn("failed to sign attachment URL", "error", err, "key", key)
			continue
		}
		out[key] = url
	}
	return out
}

// RefreshURL mints a short-lived replacement for a stale link, bypassing the
// cached value.
func (s *AttachmentService) RefreshURL(ctx context.Context, key string) (string, error) {
	url, err := s.storage.SignedURL(ctx, key, s.refreshTTL)
	if err != nil {
		return "", err
	}
	s.put(key, url, s.refreshTTL)
	return url, nil
}

func (s *AttachmentService) signedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.url, nil
	}

	url, err := s.storage.SignedURL(ctx, key, ttl)
	if err != nil {
		return "", err
	}

	s.put(key, url, ttl)
	return url, nil
}

func (s *AttachmentService) put(key, url string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Keep a safety margin so a cached link is never handed out moments
	// before it stops working.
	s.cache[key] = signedURL{
		url:       url,
		expiresAt: time.Now().Add(ttl - time.Minute),
	}
}
