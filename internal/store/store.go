// Package store persists named resources (homogeneous lists of JSON records) as
// one file each, replacing the whole file atomically on every save.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"path/filepath"

	"fjacquet/expense-tracker/internal/ledgererror"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/afero"
)

// JSONStore reads and writes resources under a base directory.
//
// Writes go to a temporary sibling that is synced and renamed over the target,
// so readers never observe a partially written file. There is no locking: two
// processes saving the same resource race and the last rename wins.
type JSONStore struct {
	fs      afero.Fs
	baseDir string
	logger  logging.Logger
}

// NewJSONStore creates a store on the OS filesystem, creating baseDir if needed.
func NewJSONStore(baseDir string, logger logging.Logger) (*JSONStore, error) {
	return NewJSONStoreWithFs(afero.NewOsFs(), baseDir, logger)
}

// NewJSONStoreWithFs creates a store on an arbitrary afero filesystem.
func NewJSONStoreWithFs(fsys afero.Fs, baseDir string, logger logging.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := fsys.MkdirAll(baseDir, 0o750); err != nil {
		return nil, &ledgererror.PersistenceError{Path: baseDir, Msg: "unable to create data directory", Err: err}
	}
	return &JSONStore{
		fs:      fsys,
		baseDir: baseDir,
		logger:  logger.WithField(logging.FieldComponent, "store"),
	}, nil
}

// BaseDir returns the directory holding the resource files.
func (s *JSONStore) BaseDir() string {
	return s.baseDir
}

func (s *JSONStore) path(resource string) string {
	return filepath.Join(s.baseDir, resource)
}

// Load returns the records of resource, or an empty list if its file does not exist.
func (s *JSONStore) Load(resource string) ([]models.Record, error) {
	path := s.path(resource)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Resource file not found, starting empty", logging.F(logging.FieldFile, path))
			return []models.Record{}, nil
		}
		return nil, &ledgererror.PersistenceError{Path: path, Msg: "unable to read from", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, &ledgererror.PersistenceError{Path: path, Msg: "corrupted JSON data in", Err: err}
	}
	if err := dec.Decode(new(interface{})); err != io.EOF {
		return nil, &ledgererror.PersistenceError{Path: path, Msg: "corrupted JSON data in", Err: errors.New("trailing data after top-level value")}
	}

	items, ok := payload.([]interface{})
	if !ok {
		return nil, &ledgererror.PersistenceError{Path: path, Msg: "expected list payload in"}
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, &ledgererror.PersistenceError{Path: path, Msg: "expected object records in"}
		}
		records = append(records, record)
	}

	s.logger.Debug("Loaded resource",
		logging.F(logging.FieldResource, resource),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// Save replaces the content of resource with records.
func (s *JSONStore) Save(resource string, records []models.Record) error {
	path := s.path(resource)
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return &ledgererror.PersistenceError{Path: path, Msg: "unable to encode records for", Err: err}
	}

	tmp, err := afero.TempFile(s.fs, s.baseDir, resource+".*.tmp")
	if err != nil {
		return &ledgererror.PersistenceError{Path: path, Msg: "unable to create temporary file for", Err: err}
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, buf.Bytes()); err != nil {
		s.discard(tmpName)
		return &ledgererror.PersistenceError{Path: tmpName, Msg: "unable to write to", Err: err}
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.discard(tmpName)
		return &ledgererror.PersistenceError{Path: path, Msg: "unable to replace", Err: err}
	}

	s.logger.Debug("Saved resource snapshot",
		logging.F(logging.FieldResource, resource),
		logging.F(logging.FieldCount, len(records)))
	return nil
}

func writeAndSync(f afero.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *JSONStore) discard(name string) {
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.WithError(err).Warn("Failed to remove temporary file", logging.F(logging.FieldFile, name))
	}
}
