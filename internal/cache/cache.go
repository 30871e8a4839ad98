package cache

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Entry is one cached response.
type Entry struct {
	Key       string    `json:"key"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a directory of JSON entries with a shared TTL.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// Open returns a Store in dir, creating it if needed. An empty dir selects
// the default cache directory. A zero ttl never expires entries.
func Open(dir string, ttl time.Duration) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Key derives the cache key for one provider call.
func Key(provider, model, prompt string) string {
	h := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + prompt))
	return fmt.Sprintf("%x", h)
}

// Get returns the cached response for key. Expired entries are removed and
// reported as a miss.
func (s *Store) Get(key string) (string, bool) {
	entry, err := s.read(s.entryPath(key))
	if err != nil {
		return "", false
	}
	if s.expired(entry) {
		_ = os.Remove(s.entryPath(key))
		return "", false
	}
	return entry.Response, true
}

// Put stores response under key.
func (s *Store) Put(key, provider, model, response string) error {
	data, err := json.Marshal(Entry{
		Key:       key,
		Provider:  provider,
		Model:     model,
		Response:  response,
		CreatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	tmp := s.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return os.Rename(tmp, s.entryPath(key))
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	names, err := s.entries()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats summarizes the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// Stats reports entry counts and size.
func (s *Store) Stats() (Stats, error) {
	stats := Stats{Dir: s.dir}
	names, err := s.entries()
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
		if entry, err := s.read(path); err == nil && s.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) expired(e Entry) bool {
	return s.ttl > 0 && s.now().Sub(e.CreatedAt) > s.ttl
}

func (s *Store) read(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Store) entries() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, e := range dirEntries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// DefaultDir returns the platform-appropriate cache directory for lgtm.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lgtm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "lgtm"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "lgtm", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "lgtm", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "lgtm"), nil
	}
}
