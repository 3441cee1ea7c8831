package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/ytget/cloud-drives/internal/model"
	"github.com/ytget/cloud-drives/internal/platform"
)

// Default values
const (
	DefaultAutoRefreshInterval = 300 // seconds
	DefaultWindowX             = 100
	DefaultWindowY             = 100
	DefaultWindowWidth         = 380
	DefaultWindowHeight        = 600
)

// Geometry keys in the window_geometry table
const (
	GeometryKeyX      = "x"
	GeometryKeyY      = "y"
	GeometryKeyWidth  = "width"
	GeometryKeyHeight = "height"
)

// ErrInvalidConfig wraps read and parse failures; Load still returns defaults alongside it
var ErrInvalidConfig = errors.New("invalid config file")

// Geometry is the last saved window rectangle
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Config is the whole persisted document
type Config struct {
	Drives              []model.RemoteEntry
	WindowGeometry      *Geometry // nil when never saved
	StayOnTop           bool
	AutoRefreshInterval int // seconds, 0 disables
	DriveOrder          []string
	RunAtStartup        bool
}

// DefaultConfig returns the configuration used when no valid file exists
func DefaultConfig() Config {
	return Config{
		Drives:              []model.RemoteEntry{},
		StayOnTop:           false,
		AutoRefreshInterval: DefaultAutoRefreshInterval,
		DriveOrder:          []string{},
		RunAtStartup:        false,
	}
}

// ClampRefreshInterval maps negative intervals to 0 (disabled)
func ClampRefreshInterval(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds
}

// fileEntry mirrors model.RemoteEntry with optional fields so missing keys get defaults
type fileEntry struct {
	RemoteName  string  `toml:"remote_name"`
	DisplayName string  `toml:"display_name"`
	DriveType   *string `toml:"drive_type"`
	Enabled     *bool   `toml:"enabled"`
}

// fileConfig is the on-disk layout
type fileConfig struct {
	Drives              []fileEntry    `toml:"drives"`
	WindowGeometry      map[string]int `toml:"window_geometry"`
	StayOnTop           bool           `toml:"stay_on_top"`
	AutoRefreshInterval int            `toml:"auto_refresh_interval"`
	DriveOrder          []string       `toml:"drive_order"`
	RunAtStartup        bool           `toml:"run_at_startup"`
}

// Store reads and writes the TOML config file. Every setter is a full
// load-mutate-save cycle; callers that change several fields at once should
// mutate a Config and call Save once.
type Store struct {
	path string

	mu          sync.Mutex
	lastWritten []byte
}

// NewStore creates a store for the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a store at the per-user default location
func NewDefaultStore() (*Store, error) {
	path, err := platform.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing file yields defaults and no error; an
// unreadable or malformed file yields defaults and an ErrInvalidConfig error.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.path, err)
	}

	cfg, err := decode(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.path, err)
	}
	return cfg, nil
}

// Save writes the whole document. The file is written to a temporary file in
// the same directory and renamed over the previous version.
func (s *Store) Save(cfg Config) error {
	data, err := encode(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmpName, platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	s.lastWritten = data
	return nil
}

// update runs one load-mutate-save cycle. A malformed file is replaced.
func (s *Store) update(mutate func(*Config)) error {
	cfg, _ := s.Load()
	mutate(&cfg)
	return s.Save(cfg)
}

// SetDrives replaces the configured remotes
func (s *Store) SetDrives(entries []model.RemoteEntry) error {
	return s.update(func(c *Config) { c.Drives = append([]model.RemoteEntry{}, entries...) })
}

// SetDriveOrder replaces the persisted display order
func (s *Store) SetDriveOrder(order []string) error {
	return s.update(func(c *Config) { c.DriveOrder = append([]string{}, order...) })
}

// SetWindowGeometry stores the window rectangle; nil clears it
func (s *Store) SetWindowGeometry(g *Geometry) error {
	return s.update(func(c *Config) {
		if g == nil {
			c.WindowGeometry = nil
			return
		}
		copied := *g
		c.WindowGeometry = &copied
	})
}

// SetStayOnTop stores the stay-on-top preference
func (s *Store) SetStayOnTop(value bool) error {
	return s.update(func(c *Config) { c.StayOnTop = value })
}

// SetAutoRefreshInterval stores the refresh interval in seconds
func (s *Store) SetAutoRefreshInterval(seconds int) error {
	return s.update(func(c *Config) { c.AutoRefreshInterval = ClampRefreshInterval(seconds) })
}

// SetRunAtStartup stores the run-at-startup preference
func (s *Store) SetRunAtStartup(value bool) error {
	return s.update(func(c *Config) { c.RunAtStartup = value })
}

// writtenByUs reports whether data is what the last Save produced
func (s *Store) writtenByUs(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWritten != nil && bytes.Equal(s.lastWritten, data)
}

func decode(data []byte) (Config, error) {
	def := DefaultConfig()
	fc := fileConfig{
		AutoRefreshInterval: def.AutoRefreshInterval,
	}
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Drives:              make([]model.RemoteEntry, 0, len(fc.Drives)),
		StayOnTop:           fc.StayOnTop,
		AutoRefreshInterval: ClampRefreshInterval(fc.AutoRefreshInterval),
		DriveOrder:          append([]string{}, fc.DriveOrder...),
		RunAtStartup:        fc.RunAtStartup,
	}

	for _, fe := range fc.Drives {
		entry := model.RemoteEntry{
			RemoteName:  fe.RemoteName,
			DisplayName: fe.DisplayName,
			DriveType:   model.DriveTypeUnknown,
			Enabled:     true,
		}
		if fe.DriveType != nil && *fe.DriveType != "" {
			entry.DriveType = *fe.DriveType
		}
		if fe.Enabled != nil {
			entry.Enabled = *fe.Enabled
		}
		cfg.Drives = append(cfg.Drives, entry)
	}

	// An empty table means "never set"
	if len(fc.WindowGeometry) > 0 {
		cfg.WindowGeometry = &Geometry{
			X:      valueOr(fc.WindowGeometry, GeometryKeyX, DefaultWindowX),
			Y:      valueOr(fc.WindowGeometry, GeometryKeyY, DefaultWindowY),
			Width:  valueOr(fc.WindowGeometry, GeometryKeyWidth, DefaultWindowWidth),
			Height: valueOr(fc.WindowGeometry, GeometryKeyHeight, DefaultWindowHeight),
		}
	}

	return cfg, nil
}

func encode(cfg Config) ([]byte, error) {
	fc := fileConfig{
		Drives:              make([]fileEntry, 0, len(cfg.Drives)),
		WindowGeometry:      map[string]int{}, // always emitted, empty when unset
		StayOnTop:           cfg.StayOnTop,
		AutoRefreshInterval: cfg.AutoRefreshInterval,
		DriveOrder:          append([]string{}, cfg.DriveOrder...),
		RunAtStartup:        cfg.RunAtStartup,
	}

	for _, e := range cfg.Drives {
		driveType := e.DriveType
		if driveType == "" {
			driveType = model.DriveTypeUnknown
		}
		enabled := e.Enabled
		fc.Drives = append(fc.Drives, fileEntry{
			RemoteName:  e.RemoteName,
			DisplayName: e.DisplayName,
			DriveType:   &driveType,
			Enabled:     &enabled,
		})
	}

	if g := cfg.WindowGeometry; g != nil {
		fc.WindowGeometry[GeometryKeyX] = g.X
		fc.WindowGeometry[GeometryKeyY] = g.Y
		fc.WindowGeometry[GeometryKeyWidth] = g.Width
		fc.WindowGeometry[GeometryKeyHeight] = g.Height
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func valueOr(m map[string]int, key string, fallback int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
