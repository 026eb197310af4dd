package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/antoinebou12/horaire-search/internal/corpus/store"
)

// Config holds snapshot manager configuration.
type Config struct {
	SnapshotKey  string        // object key for the compressed corpus database
	LockKey      string        // object key for the distributed leader lock
	LockTTL      time.Duration // TTL for the distributed lock
	PollInterval time.Duration // how often to check for a new snapshot
	TempDir      string        // directory for temporary files
}

// Manager synchronizes the SQLite course database with the object store:
// downloading the latest snapshot, uploading new ones when this replica is
// leader, and hot-swapping the live database when a newer snapshot appears.
type Manager struct {
	store       *ObjectStore
	config      Config
	currentETag string
	mu          sync.RWMutex
	pollCancel  context.CancelFunc
	pollDone    chan struct{}
	leaderMu    sync.Mutex
	leaderLock  *DistributedLock
	renewCancel context.CancelFunc
	renewDone   chan struct{}
}

// New creates a new snapshot manager backed by store.
func New(objStore *ObjectStore, cfg Config) *Manager {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Manager{
		store:    objStore,
		config:   cfg,
		pollDone: make(chan struct{}),
	}
}

// DownloadSnapshot downloads and decompresses the latest snapshot.
// Returns the path to the decompressed database and its ETag.
func (m *Manager) DownloadSnapshot(ctx context.Context, destDir string) (string, string, error) {
	body, etag, err := m.store.Download(ctx, m.config.SnapshotKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("download snapshot: %w", err)
	}
	defer func() { _ = body.Close() }()

	compressedPath := filepath.Join(destDir, "snapshot_download.db.zst")
	compressedFile, err := os.Create(compressedPath)
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(compressedFile, body); err != nil {
		_ = compressedFile.Close()
		_ = os.Remove(compressedPath)
		return "", "", fmt.Errorf("write compressed data: %w", err)
	}
	_ = compressedFile.Close()

	dbPath := filepath.Join(destDir, "courses.db")
	compressedReader, err := os.Open(compressedPath)
	if err != nil {
		_ = os.Remove(compressedPath)
		return "", "", fmt.Errorf("open compressed file: %w", err)
	}
	defer func() { _ = compressedReader.Close() }()

	if err := DecompressStream(compressedReader, dbPath); err != nil {
		_ = os.Remove(compressedPath)
		return "", "", fmt.Errorf("decompress snapshot: %w", err)
	}
	_ = os.Remove(compressedPath)

	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()

	return dbPath, etag, nil
}

// UploadSnapshot compresses and uploads the course database as a new snapshot.
// Returns the ETag of the uploaded snapshot.
func (m *Manager) UploadSnapshot(ctx context.Context, db *store.DB) (string, error) {
	snapshotPath := filepath.Join(m.config.TempDir, fmt.Sprintf("snapshot_%d.db", time.Now().UnixNano()))
	if err := db.CreateSnapshot(ctx, snapshotPath); err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer func() { _ = os.Remove(snapshotPath) }()

	compressedPath := snapshotPath + ".zst"
	if err := CompressFile(snapshotPath, compressedPath); err != nil {
		return "", fmt.Errorf("compress database: %w", err)
	}
	defer func() { _ = os.Remove(compressedPath) }()

	compressedFile, err := os.Open(compressedPath)
	if err != nil {
		return "", fmt.Errorf("open compressed file: %w", err)
	}
	defer func() { _ = compressedFile.Close() }()

	etag, err := m.store.Upload(ctx, m.config.SnapshotKey, compressedFile, "application/zstd")
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()

	return etag, nil
}

// AcquireLeaderLock attempts to become the snapshot-writing leader.
func (m *Manager) AcquireLeaderLock(ctx context.Context) (bool, error) {
	lock := NewDistributedLock(m.store, m.config.LockKey, m.config.LockTTL)
	acquired, err := lock.Acquire(ctx)
	if err != nil || !acquired {
		return acquired, err
	}

	m.leaderMu.Lock()
	if m.renewCancel != nil {
		m.renewCancel()
		if m.renewDone != nil {
			<-m.renewDone
		}
	}
	m.leaderLock = lock
	renewCtx, cancel := context.WithCancel(ctx)
	m.renewCancel = cancel
	m.renewDone = make(chan struct{})
	go m.renewLoop(renewCtx, lock, m.renewDone)
	m.leaderMu.Unlock()

	return true, nil
}

// ReleaseLeaderLock releases the leader lock and stops lease renewal.
func (m *Manager) ReleaseLeaderLock(ctx context.Context) error {
	m.leaderMu.Lock()
	lock := m.leaderLock
	cancel := m.renewCancel
	done := m.renewDone
	m.leaderLock = nil
	m.renewCancel = nil
	m.renewDone = nil
	m.leaderMu.Unlock()

	if cancel != nil {
		cancel()
		if done != nil {
			<-done
		}
	}

	if lock == nil {
		return nil
	}
	return lock.Release(ctx)
}

// StartPolling polls the object store for a newer snapshot and hot-swaps
// hotSwapDB when one appears.
func (m *Manager) StartPolling(ctx context.Context, hotSwapDB *store.HotSwapDB, destDir string) {
	pollCtx, cancel := context.WithCancel(ctx)
	m.pollCancel = cancel

	go func() {
		defer close(m.pollDone)

		ticker := time.NewTicker(m.config.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				slog.Info("snapshot polling stopped")
				return
			case <-ticker.C:
				m.pollOnce(pollCtx, hotSwapDB, destDir)
			}
		}
	}()

	slog.Info("snapshot polling started",
		"interval", m.config.PollInterval,
		"snapshot_key", m.config.SnapshotKey)
}

func (m *Manager) pollOnce(ctx context.Context, hotSwapDB *store.HotSwapDB, destDir string) {
	m.mu.RLock()
	currentETag := m.currentETag
	m.mu.RUnlock()

	remoteETag, err := m.store.HeadObject(ctx, m.config.SnapshotKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("snapshot poll: head object failed", "error", err)
		}
		return
	}

	if remoteETag == currentETag {
		return
	}

	slog.Info("new snapshot detected, initiating hot-swap",
		"old_etag", currentETag,
		"new_etag", remoteETag)

	newDbPath := filepath.Join(destDir, fmt.Sprintf("courses_%d.db", time.Now().UnixNano()))

	body, _, err := m.store.Download(ctx, m.config.SnapshotKey)
	if err != nil {
		slog.Error("snapshot poll: download failed", "error", err)
		return
	}
	defer func() { _ = body.Close() }()

	if err := DecompressStream(body, newDbPath); err != nil {
		slog.Error("snapshot poll: decompress failed", "error", err)
		_ = os.Remove(newDbPath)
		return
	}

	if err := hotSwapDB.Swap(ctx, newDbPath); err != nil {
		slog.Error("snapshot poll: hot-swap failed", "error", err)
		_ = os.Remove(newDbPath)
		_ = os.Remove(newDbPath + "-wal")
		_ = os.Remove(newDbPath + "-shm")
		return
	}

	m.mu.Lock()
	m.currentETag = remoteETag
	m.mu.Unlock()

	slog.Info("hot-swap completed successfully", "new_etag", remoteETag)
}

// StopPolling stops the background polling goroutine.
func (m *Manager) StopPolling() {
	if m.pollCancel != nil {
		m.pollCancel()
		<-m.pollDone
	}
}

func (m *Manager) renewLoop(ctx context.Context, lock *DistributedLock, done chan struct{}) {
	defer close(done)

	interval := m.config.LockTTL / 3
	if interval < 10*time.Second {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			renewed, err := lock.Renew(ctx)
			if err != nil {
				slog.Warn("leader lock renew failed", "error", err)
				return
			}
			if !renewed {
				slog.Warn("leader lock lost during renew")
				return
			}
		}
	}
}

// CurrentETag returns the ETag of the currently loaded snapshot.
func (m *Manager) CurrentETag() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentETag
}

// SetCurrentETag sets the current ETag (used when loading from local disk).
func (m *Manager) SetCurrentETag(etag string) {
	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()
}
