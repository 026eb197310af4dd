package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/antoinebou12/horaire-search/internal/config"
	"github.com/antoinebou12/horaire-search/internal/search"
)

// HotSwapDB wraps a DB with thread-safe hot-swap capability.
// All read operations acquire a read lock, allowing concurrent queries.
// The Swap operation acquires a write lock, blocking new queries while
// atomically replacing the underlying database connection.
type HotSwapDB struct {
	mu      sync.RWMutex
	current *DB
}

// NewHotSwapDB creates a new HotSwapDB with the given initial database path.
func NewHotSwapDB(ctx context.Context, dbPath string) (*HotSwapDB, error) {
	db, err := New(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("hotswap: create initial db: %w", err)
	}

	return &HotSwapDB{current: db}, nil
}

// DB returns the current database handle.
func (h *HotSwapDB) DB() *DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Swap atomically replaces the current database with a new one.
//
// Swap process:
//  1. Open and validate the new database
//  2. Acquire write lock (blocks new read operations)
//  3. Swap the database pointer
//  4. Release write lock
//  5. Close old database asynchronously (with grace period for in-flight queries)
func (h *HotSwapDB) Swap(ctx context.Context, newDbPath string) error {
	newDB, err := New(ctx, newDbPath)
	if err != nil {
		return fmt.Errorf("hotswap: open new db: %w", err)
	}

	if err := newDB.Ping(ctx); err != nil {
		_ = newDB.Close()
		return fmt.Errorf("hotswap: ping new db: %w", err)
	}

	h.mu.Lock()
	oldWriter, oldReader, oldPath := h.current.SwapConnections(newDB)
	h.mu.Unlock()

	go func() {
		time.Sleep(config.HotSwapCloseGracePeriod)
		if oldReader != nil {
			_ = oldReader.Close()
		}
		if oldWriter != nil {
			_ = oldWriter.Close()
		}

		currentPath := h.current.Path()
		if oldPath != currentPath && oldPath != ":memory:" {
			_ = os.Remove(oldPath)
			_ = os.Remove(oldPath + "-wal")
			_ = os.Remove(oldPath + "-shm")
		}
	}()

	return nil
}

// Path returns the current database file path.
func (h *HotSwapDB) Path() string {
	h.mu.RLock()
	current := h.current
	h.mu.RUnlock()
	return current.Path()
}

// Close closes the current database connection.
func (h *HotSwapDB) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		return h.current.Close()
	}
	return nil
}

// Ping checks if the current database is accessible.
func (h *HotSwapDB) Ping(ctx context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Ping(ctx)
}

// Reader returns the reader connection pool for read operations.
func (h *HotSwapDB) Reader() *sql.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Reader()
}

// Writer returns the writer connection for write operations.
func (h *HotSwapDB) Writer() *sql.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Writer()
}

// Snapshot implements search.CorpusProvider over the current database.
func (h *HotSwapDB) Snapshot() []search.Course {
	return h.DB().Snapshot()
}
