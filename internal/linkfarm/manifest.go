package linkfarm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"privshim/pkg/redirect"
)

// Manifest is the YAML description of an installation: where the
// links live, which shim binary they point at, and which front-end
// names to expose. Only the CLI reads it; the shim itself reads no
// configuration.
type Manifest struct {
	BinDir string   `yaml:"bin_dir"`
	Shim   string   `yaml:"shim,omitempty"`
	Links  []string `yaml:"links"`
}

// DefaultManifest returns the stock installation: all three front-end
// names linked next to the shim.
func DefaultManifest() *Manifest {
	return &Manifest{
		Links: redirect.FrontEndNames(),
	}
}

// LoadManifest loads a manifest from a YAML file, filling in defaults
// for omitted fields.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var mf Manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(mf.Links) == 0 {
		mf.Links = redirect.FrontEndNames()
	}

	for _, name := range mf.Links {
		if !redirect.IsFrontEndName(name) {
			return nil, fmt.Errorf("manifest link %q is not a recognized front-end name", name)
		}
	}

	return &mf, nil
}
