package tenant

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"resto_pos_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Pool keeps one open *sql.DB per restaurant code so that requests reuse
// tenant handles instead of dialing a fresh connection each time. Handles
// that stay unused longer than idleTTL are closed by a background janitor.
type Pool struct {
	mu      sync.Mutex
	entries map[string]*poolEntry
	idleTTL time.Duration
	done    chan struct{}
	closed  bool
}

type poolEntry struct {
	db       *sql.DB
	dsn      string
	lastUsed time.Time
}

// Per-tenant connection limits. Each tenant database serves one restaurant's
// staff, so the per-handle pool can stay small.
const (
	tenantMaxOpenConns = 5
	tenantMaxIdleConns = 2
)

// NewPool creates a tenant handle pool and starts its idle-eviction janitor.
func NewPool(idleTTL time.Duration) *Pool {
	p := &Pool{
		entries: make(map[string]*poolEntry),
		idleTTL: idleTTL,
		done:    make(chan struct{}),
	}
	go p.evictLoop(idleTTL / 2)
	return p
}

// Get returns the tenant handle for a restaurant code, opening it on first
// use. If the registered DSN changed since the handle was opened, the stale
// handle is closed and replaced.
func (p *Pool) Get(code, dsn string) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("tenant pool is closed")
	}

	if entry, ok := p.entries[code]; ok {
		if entry.dsn == dsn {
			entry.lastUsed = time.Now()
			return entry.db, nil
		}
		_ = entry.db.Close()
		delete(p.entries, code)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening tenant database for code %s: %w", code, err)
	}
	db.SetMaxOpenConns(tenantMaxOpenConns)
	db.SetMaxIdleConns(tenantMaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	p.entries[code] = &poolEntry{db: db, dsn: dsn, lastUsed: time.Now()}
	return db, nil
}

// Evict closes and removes the handle for a restaurant code if present.
func (p *Pool) Evict(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[code]; ok {
		_ = entry.db.Close()
		delete(p.entries, code)
	}
}

// Len reports the number of live tenant handles.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close shuts down the janitor and closes every live handle.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	for code, entry := range p.entries {
		_ = entry.db.Close()
		delete(p.entries, code)
	}
}

func (p *Pool) evictLoop(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.evictIdle(time.Now())
		case <-p.done:
			return
		}
	}
}

// evictIdle closes handles whose last use is older than idleTTL.
func (p *Pool) evictIdle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for code, entry := range p.entries {
		if now.Sub(entry.lastUsed) > p.idleTTL {
			_ = entry.db.Close()
			delete(p.entries, code)
			utils.LogDebug("Evicted idle tenant handle", map[string]interface{}{"restaurant_code": code})
		}
	}
}
