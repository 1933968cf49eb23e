package linkfarm

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// persistedState represents the JSON structure saved to disk.
type persistedState struct {
	Version string                `json:"version"`
	Updated time.Time             `json:"updated"`
	Links   map[string]*LinkState `json:"links"`
}

// SaveState persists the current link state to disk.
func (m *Manager) SaveState() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveStateUnlocked()
}

// saveStateUnlocked persists state without acquiring locks.
// Caller must hold at least a read lock.
func (m *Manager) saveStateUnlocked() error {
	if m.statePath == "" {
		return nil
	}

	state := persistedState{
		Version: "1.0",
		Updated: time.Now(),
		Links:   m.links,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	// Write atomically (write to temp file, then rename)
	tempPath := m.statePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	if err := os.Rename(tempPath, m.statePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// LoadState restores the link state from disk.
func (m *Manager) LoadState() error {
	if m.statePath == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No state file yet - this is OK on first run
			return nil
		}
		return fmt.Errorf("read state file: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshal state: %w", err)
	}

	m.links = state.Links
	if m.links == nil {
		m.links = make(map[string]*LinkState)
	}

	m.logger.Printf("loaded state: %d links (version=%s, updated=%s)",
		len(m.links), state.Version, state.Updated.Format(time.RFC3339))

	return nil
}
