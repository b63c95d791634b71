package config

import (
	"maps"
	"time"

	"github.com/muurk/vizconnect/internal/source"
)

// MaxRecent is the number of recent selections kept in the config file.
const MaxRecent = 10

// Registry represents the entire user configuration file.
type Registry struct {
	Version      int                 `yaml:"version"`
	ActiveSource string              `yaml:"active_source,omitempty"` // ID of the last opened source
	Recent       []RecentSelection   `yaml:"recent,omitempty"`        // Newest first
	Connectors   []source.Descriptor `yaml:"connectors,omitempty"`    // User-defined connectors
	Preferences  *Preferences        `yaml:"preferences,omitempty"`

	path string // File the registry was loaded from (empty = default location)
}

// RecentSelection is one source the user opened.
type RecentSelection struct {
	SourceID string            `yaml:"source_id"`
	Params   map[string]string `yaml:"params,omitempty"`
	OpenedAt time.Time         `yaml:"opened_at"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Discover        bool `yaml:"discover"`         // Scan for WebSocket sources via mDNS when the dialog opens
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: defaultPreferences(),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		Discover:        true,
		DiscoverTimeout: 3,
	}
}

// Path returns the file this registry is saved to.
func (r *Registry) Path() (string, error) {
	if r.path != "" {
		return r.path, nil
	}
	return GetConfigPath()
}

// Catalog returns the built-in connectors merged with the user's connectors.
func (r *Registry) Catalog() []source.Descriptor {
	return source.Merge(source.Builtin(), r.Connectors)
}

// Active returns the descriptor of the last opened source, looked up in
// catalog. Returns nil when none is recorded or it no longer exists.
func (r *Registry) Active(catalog []source.Descriptor) *source.Descriptor {
	if r.ActiveSource == "" {
		return nil
	}
	d, ok := source.Find(catalog, r.ActiveSource)
	if !ok {
		return nil
	}
	return &d
}

// RecordSelection makes sourceID the active source and prepends it to the
// recent list, dropping older entries for the same source and trimming the
// list to MaxRecent.
func (r *Registry) RecordSelection(sourceID string, params map[string]string, at time.Time) {
	r.ActiveSource = sourceID

	recent := make([]RecentSelection, 0, MaxRecent)
	recent = append(recent, RecentSelection{
		SourceID: sourceID,
		Params:   maps.Clone(params),
		OpenedAt: at,
	})
	for _, rs := range r.Recent {
		if len(recent) == MaxRecent {
			break
		}
		if rs.SourceID == sourceID {
			continue
		}
		recent = append(recent, rs)
	}
	r.Recent = recent
}

// LastParams returns the parameters last used with sourceID.
func (r *Registry) LastParams(sourceID string) (map[string]string, bool) {
	for _, rs := range r.Recent {
		if rs.SourceID == sourceID {
			return maps.Clone(rs.Params), true
		}
	}
	return nil, false
}

// Validate checks the user-defined connectors.
func (r *Registry) Validate() error {
	for _, d := range r.Connectors {
		if err := d.Check(); err != nil {
			return err
		}
	}
	return nil
}
