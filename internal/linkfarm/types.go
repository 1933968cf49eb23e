// Package linkfarm manages the on-disk installation of the shim:
// a farm of front-end symlinks (sudo, visudo, sudoedit) in one
// directory, all pointing at the canonical shim binary.
package linkfarm

import (
	"log"
	"sync"
	"time"
)

// Manager installs, removes and verifies the front-end links.
type Manager struct {
	binDir    string // directory the links live in
	shimPath  string // canonical shim binary the links point at
	statePath string // persisted record of installed links
	mu        sync.RWMutex
	links     map[string]*LinkState // link name -> state
	logger    *log.Logger
}

// LinkState records one installed front-end link.
type LinkState struct {
	Name      string    `json:"name"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds configuration for creating a new Manager.
type Config struct {
	BinDir    string
	ShimPath  string
	StatePath string
	Logger    *log.Logger
}
