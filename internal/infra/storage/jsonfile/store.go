// File: internal/infra/storage/jsonfile/store.go
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// store persists one record collection as a pretty-printed JSON array,
// byte-compatible with the files the legacy deployment wrote.
type store struct {
	path string
	log  *zerolog.Logger
}

// load returns the whole collection. A missing file yields nil. An
// unparsable file is treated the same way so a damaged file never takes
// the service down, but it is logged at error level because it means the
// previous contents are being abandoned. The decode goes through a local
// slice: a type error can leave a partially filled target behind, and a
// half-decoded collection must never surface (the next save would persist
// it).
func load[T any](s *store) ([]T, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var records []T
	if err := json.Unmarshal(b, &records); err != nil {
		s.log.Error().Err(err).Str("file", s.path).
			Msg("collection file is unparsable; treating it as empty")
		return nil, nil
	}
	return records, nil
}

// save overwrites the whole collection. The write goes to a temp file in the
// same directory followed by a rename, so readers never observe a partial
// collection.
func (s *store) save(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
