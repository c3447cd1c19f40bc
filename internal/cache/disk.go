package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"adapter-generator/internal/common"
	"adapter-generator/internal/logging"
)

const (
	binaryExt   = ".so"
	manifestExt = ".yaml"
	dirPerm     = 0o755
)

// Manifest describes a persisted binary.
type Manifest struct {
	Name      string    `yaml:"name"`
	Key       string    `yaml:"key"`
	Request   string    `yaml:"request"`
	Mode      string    `yaml:"mode"`
	GoVersion string    `yaml:"go_version,omitempty"`
	Created   time.Time `yaml:"created"`
}

// Entry is a persisted binary found by Lookup.
type Entry struct {
	Path     string
	Manifest *Manifest
}

// Disk is a directory of compiled adapter binaries shared by processes.
// A Disk without a directory is disabled: lookups miss and stores are
// no-ops.
type Disk struct {
	dir    string
	logger *slog.Logger
}

// NewDisk returns a Disk rooted at dir. An empty dir disables it.
func NewDisk(dir string, logger *slog.Logger) *Disk {
	return &Disk{dir: dir, logger: logging.For(logger, "cache")}
}

// Enabled reports whether d persists anything.
func (d *Disk) Enabled() bool {
	return d != nil && d.dir != ""
}

// Dir returns the cache directory.
func (d *Disk) Dir() string {
	if d == nil {
		return ""
	}

	return d.dir
}

func fileBase(name, key string) string {
	return name + "-" + key
}

// Lookup finds the binary persisted for key, whatever name it was stored
// under. A missing or unreadable manifest does not hide the binary.
func (d *Disk) Lookup(key string) (*Entry, bool) {
	if !d.Enabled() || key == "" || strings.ContainsAny(key, `*?[\/`) {
		return nil, false
	}

	matches, err := filepath.Glob(filepath.Join(d.dir, "*-"+key+binaryExt))
	if err != nil || len(matches) == 0 {
		return nil, false
	}

	sort.Strings(matches)

	e := &Entry{Path: matches[0]}

	m, err := readManifest(strings.TrimSuffix(e.Path, binaryExt) + manifestExt)
	if err != nil {
		d.logger.Debug("cache manifest unavailable", "path", e.Path, "error", err)
	} else {
		e.Manifest = m
	}

	return e, true
}

// Store copies the binary at src into the cache and writes its manifest.
// Both files are published with a rename: concurrent writers of one key
// overwrite each other, readers never see partial files.
func (d *Disk) Store(src string, m Manifest) (string, error) {
	if !d.Enabled() {
		return "", errors.New("disk cache is disabled")
	}

	if m.Name == "" || m.Key == "" {
		return "", errors.New("cache manifest needs a name and a key")
	}

	if m.Created.IsZero() {
		m.Created = time.Now().UTC()
	}

	if err := os.MkdirAll(d.dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src, err)
	}

	base := filepath.Join(d.dir, fileBase(m.Name, m.Key))

	manifest, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}

	// The manifest goes first: a binary is never visible without one
	// unless an older writer's manifest is being replaced.
	if err := common.WriteFileAtomic(base+manifestExt, manifest); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}

	if err := common.WriteFileAtomic(base+binaryExt, content); err != nil {
		return "", fmt.Errorf("writing binary: %w", err)
	}

	d.logger.Info("adapter binary cached", "name", m.Name, "key", m.Key, "path", base+binaryExt)

	return base + binaryExt, nil
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &m, nil
}
