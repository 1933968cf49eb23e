package linkfarm

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"privshim/pkg/redirect"
)

// NewManager creates a new link manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.BinDir == "" {
		return nil, fmt.Errorf("bin directory cannot be empty")
	}
	if cfg.ShimPath == "" {
		return nil, fmt.Errorf("shim path cannot be empty")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stdout, "[linkfarm] ", log.LstdFlags|log.Lmsgprefix)
	}

	return &Manager{
		binDir:    cfg.BinDir,
		shimPath:  cfg.ShimPath,
		statePath: cfg.StatePath,
		links:     make(map[string]*LinkState),
		logger:    cfg.Logger,
	}, nil
}

// Start loads persisted state and verifies the shim artifact.
func (m *Manager) Start() error {
	if err := os.MkdirAll(m.binDir, 0755); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}

	// State may not exist on first run.
	if err := m.LoadState(); err != nil {
		m.logger.Printf("warning: could not load state: %v", err)
	}

	if err := m.EnsureShim(); err != nil {
		return fmt.Errorf("ensure shim: %w", err)
	}

	m.logger.Printf("started (bindir=%s, shim=%s)", m.binDir, m.shimPath)
	return nil
}

// EnsureShim verifies that the canonical shim binary exists with
// correct permissions before any link is created.
func (m *Manager) EnsureShim() error {
	stat, err := os.Stat(m.shimPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("shim binary not found at %s", m.shimPath)
		}
		return fmt.Errorf("stat shim: %w", err)
	}

	if !stat.Mode().IsRegular() {
		return fmt.Errorf("shim at %s is not a regular file", m.shimPath)
	}

	if stat.Mode()&0111 == 0 {
		return fmt.Errorf("shim at %s is not executable (mode: %o)", m.shimPath, stat.Mode())
	}

	return nil
}

// Install creates symlinks for the given front-end names, pointing at
// the canonical shim. Created links are rolled back if any link fails.
func (m *Manager) Install(names []string) error {
	for _, name := range names {
		if err := validateLinkName(name); err != nil {
			return fmt.Errorf("invalid link %q: %w", name, err)
		}
	}

	if err := m.EnsureShim(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := []string{}
	for _, name := range names {
		if _, exists := m.links[name]; exists {
			continue
		}
		linkPath := filepath.Join(m.binDir, name)
		if err := os.Symlink(m.shimPath, linkPath); err != nil {
			for _, done := range created {
				os.Remove(filepath.Join(m.binDir, done))
				delete(m.links, done)
			}
			return fmt.Errorf("create symlink for %s: %w", name, err)
		}
		created = append(created, name)
		m.links[name] = &LinkState{
			Name:      name,
			Target:    m.shimPath,
			CreatedAt: time.Now(),
		}
		m.logger.Printf("linked %s -> %s", linkPath, m.shimPath)
	}

	if err := m.saveStateUnlocked(); err != nil {
		m.logger.Printf("warning: failed to save state: %v", err)
	}
	return nil
}

// Remove deletes the given front-end links.
func (m *Manager) Remove(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range names {
		linkPath := filepath.Join(m.binDir, name)
		if err := os.Remove(linkPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove symlink %s: %w", linkPath, err)
		}
		delete(m.links, name)
		m.logger.Printf("removed %s", linkPath)
	}

	if err := m.saveStateUnlocked(); err != nil {
		m.logger.Printf("warning: failed to save state: %v", err)
	}
	return nil
}

// Links returns a snapshot of the installed links.
func (m *Manager) Links() []*LinkState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]*LinkState, 0, len(m.links))
	for _, state := range m.links {
		stateCopy := *state
		links = append(links, &stateCopy)
	}
	return links
}

// Verify reconciles recorded links against the filesystem. It returns
// one issue string per broken, missing or redirected link; an empty
// slice means the installation is healthy.
func (m *Manager) Verify() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.EnsureShim(); err != nil {
		return nil, err
	}

	var issues []string
	for name := range m.links {
		linkPath := filepath.Join(m.binDir, name)
		dest, err := os.Readlink(linkPath)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: link missing or unreadable: %v", name, err))
			continue
		}
		if dest != m.shimPath {
			issues = append(issues, fmt.Sprintf("%s: points at %s, expected %s", name, dest, m.shimPath))
		}
	}
	return issues, nil
}

// validateLinkName restricts links to the recognized front-end names.
// The canonical name itself is refused so a skipped link step can
// never shadow a system-provided tool.
func validateLinkName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == redirect.CanonicalName {
		return fmt.Errorf("refusing to link the canonical name %q", name)
	}
	if !redirect.IsFrontEndName(name) {
		return fmt.Errorf("not a recognized front-end name (expected one of sudo, visudo, sudoedit)")
	}
	return nil
}
