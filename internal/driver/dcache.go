package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// Digest identifies source content for cache keying.
type Digest [sha256.Size]byte

// DigestOf hashes source bytes.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// DiskCache stores compiled programs keyed by source digest. Entries are the
// same versioned msgpack artifacts `imp build` writes, so a schema bump
// invalidates them naturally.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the standard location
// ($XDG_CACHE_HOME or ~/.cache, under app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "progs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".impc")
}

// Load returns the cached program for key, if a valid entry exists.
// Undecodable or stale-schema entries are treated as misses.
func (c *DiskCache) Load(key Digest) (*bytecode.Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	prog, err := bytecode.UnmarshalArtifact(data)
	if err != nil {
		return nil, false
	}
	return prog, true
}

// Store writes the program under key.
func (c *DiskCache) Store(key Digest, prog *bytecode.Program) error {
	data, err := bytecode.MarshalArtifact(prog)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.pathFor(key), data, 0o644)
}
