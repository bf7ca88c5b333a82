package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/yigger/githd/log"
)

const (
	StateFileName = "state.json"
	LockFileName  = "state.lock"

	// DefaultLockTimeout bounds how long we wait for the state lock.
	DefaultLockTimeout = 5 * time.Second

	// MaxRecentRepos caps the recently-used repository list.
	MaxRecentRepos = 10
)

// ConfigDir returns the path to the application's configuration directory,
// creating it if necessary. It can be overridden with GITHD_CONFIG_DIR,
// which the tests rely on.
func ConfigDir() (string, error) {
	if dir := os.Getenv("GITHD_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".githd")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// State is the application state that persists between sessions.
type State struct {
	// ExpressMode mirrors the express-mode toggle exposed as a command.
	ExpressMode bool `json:"express_mode"`
	// RecentRepos lists recently browsed repository root paths, most recent first.
	RecentRepos []string `json:"recent_repos"`

	lockFile    *flock.Flock  `json:"-"`
	lockTimeout time.Duration `json:"-"`
}

// DefaultState returns the default state with locking initialized.
func DefaultState() *State {
	s := &State{lockTimeout: DefaultLockTimeout}
	dir, err := ConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return s
	}
	s.lockFile = flock.New(filepath.Join(dir, LockFileName))
	return s
}

// LoadState loads the state from disk with a shared lock. If that cannot be
// done, the default state is returned.
func LoadState() *State {
	s := DefaultState()
	if err := s.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load state from disk: %v", err)
	}
	return s
}

func (s *State) loadFromDisk() error {
	if s.lockFile != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
		defer cancel()

		locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to acquire read lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("could not acquire read lock within timeout")
		}
		defer s.lockFile.Unlock()
	}

	dir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, StateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			// No state yet, keep defaults.
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	s.ExpressMode = loaded.ExpressMode
	s.RecentRepos = loaded.RecentRepos
	return nil
}

// Save writes the state to disk under an exclusive lock.
func (s *State) Save() error {
	if s.lockFile != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
		defer cancel()

		locked, err := s.lockFile.TryLockContext(ctx, 100*time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to acquire write lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("could not acquire write lock within timeout")
		}
		defer s.lockFile.Unlock()
	}

	dir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write through a temp file so readers never see a torn state file.
	target := filepath.Join(dir, StateFileName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// TouchRepo moves path to the front of the recent-repository list,
// truncating the list to MaxRecentRepos.
func (s *State) TouchRepo(path string) {
	recents := make([]string, 0, len(s.RecentRepos)+1)
	recents = append(recents, path)
	for _, p := range s.RecentRepos {
		if p != path {
			recents = append(recents, p)
		}
	}
	if len(recents) > MaxRecentRepos {
		recents = recents[:MaxRecentRepos]
	}
	s.RecentRepos = recents
}
