package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/piview/piview/pkg/errors"
	"github.com/piview/piview/pkg/pi"
)

// backupDirName is the subdirectory, next to the config file, that receives
// a timestamped copy of the previous file before every save.
const backupDirName = "backup"

// document is the on-disk shape of the configuration: four top-level TOML
// tables, each keyed by the string-encoded integer identifier.
type document struct {
	PinTypes    map[string]Entry `toml:"pin_types"`
	Commodities map[string]Entry `toml:"commodities"`
	Schematics  map[string]Entry `toml:"schematics"`
	PlanetTypes map[string]Entry `toml:"planet_types"`
}

// Store binds a Configuration to its durable TOML file.
//
// Store is not safe for concurrent use; resolution runs one session at a
// time and the store is only mutated from that flow.
type Store struct {
	path  string
	cfg   *Configuration
	dirty bool
}

// Load reads the configuration from path. A missing file is not an error:
// the store starts empty and the file is created on the first save. A file
// that exists but cannot be read or decoded yields a PERSISTENCE_ERROR.
func Load(path string) (*Store, error) {
	s := &Store{path: path, cfg: NewConfiguration()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePersistence, err, "read config %s", path)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodePersistence, err, "decode config %s", path)
	}

	for ns, table := range map[pi.Namespace]map[string]Entry{
		pi.NamespacePinType:    doc.PinTypes,
		pi.NamespaceCommodity:  doc.Commodities,
		pi.NamespaceSchematic:  doc.Schematics,
		pi.NamespacePlanetType: doc.PlanetTypes,
	} {
		for key, entry := range table {
			value, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodePersistence, err,
					"config %s: %s table has non-integer key %q", path, ns, key)
			}
			s.cfg.Upsert(pi.Identifier{Namespace: ns, Value: value}, entry)
		}
	}

	return s, nil
}

// Path returns the location of the durable config file.
func (s *Store) Path() string { return s.path }

// Configuration returns the in-memory configuration owned by this store.
func (s *Store) Configuration() *Configuration { return s.cfg }

// Dirty reports whether the in-memory configuration has unsaved changes.
func (s *Store) Dirty() bool { return s.dirty }

// Lookup returns the entry for id, or false if the identifier is unknown.
func (s *Store) Lookup(id pi.Identifier) (Entry, bool) {
	return s.cfg.Lookup(id)
}

// Upsert inserts or overwrites the entry for id in memory. The change has
// no durable effect until Save.
func (s *Store) Upsert(id pi.Identifier, e Entry) {
	s.cfg.Upsert(id, e)
	s.dirty = true
}

// PlanetName resolves a planet type id to its display name, falling back to
// a generic label when the id is unknown. Never fails the caller.
func (s *Store) PlanetName(value int64) string {
	if e, ok := s.cfg.Lookup(pi.PlanetType(value)); ok && e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("Unknown Planet (%d)", value)
}

// Save persists the full configuration atomically: the document is encoded
// to a temporary file in the target directory and renamed over the config
// path, so a reader never observes a partial write. The previous file, if
// any, is first copied into the backup directory with a timestamped name.
//
// On failure the in-memory configuration is untouched and remains usable;
// the returned error carries the PERSISTENCE_ERROR code.
func (s *Store) Save() error {
	doc := document{
		PinTypes:    make(map[string]Entry),
		Commodities: make(map[string]Entry),
		Schematics:  make(map[string]Entry),
		PlanetTypes: make(map[string]Entry),
	}
	tables := map[pi.Namespace]map[string]Entry{
		pi.NamespacePinType:    doc.PinTypes,
		pi.NamespaceCommodity:  doc.Commodities,
		pi.NamespaceSchematic:  doc.Schematics,
		pi.NamespacePlanetType: doc.PlanetTypes,
	}
	for id, entry := range s.cfg.entries {
		tables[id.Namespace][strconv.FormatInt(id.Value, 10)] = entry
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "create config dir %s", dir)
	}

	if err := s.backup(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodePersistence, err, "encode config")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodePersistence, err, "write config")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodePersistence, err, "replace config %s", s.path)
	}

	s.dirty = false
	return nil
}

// backup copies the current config file into backup/config_backup_<ts>.toml.
// A missing config file (first save) is not an error.
func (s *Store) backup() error {
	src, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "open config for backup")
	}
	defer src.Close()

	backupDir := filepath.Join(filepath.Dir(s.path), backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "create backup dir %s", backupDir)
	}

	name := fmt.Sprintf("config_backup_%s.toml", time.Now().Format("20060102_150405"))
	dst, err := os.Create(filepath.Join(backupDir, name))
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "create backup file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "write backup file")
	}
	return nil
}
