package persistence

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/phd-protocol/phd-go/pkg/wire"
)

// FileStore keeps extended configurations as one CBOR file per
// configuration under a directory. Standard configurations stay in memory.
type FileStore struct {
	mu  sync.Mutex
	dir string
	std *MemoryStore
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, std: NewMemoryStore()}
}

// RegisterStandard registers a standard configuration.
func (s *FileStore) RegisterStandard(id uint16, objs wire.ConfigObjectList) error {
	return s.std.RegisterStandard(id, objs)
}

func (s *FileStore) path(systemID []byte, id uint16) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%04x.cfg", hex.EncodeToString(systemID), id))
}

// Lookup returns the configuration known for (systemID, id). A missing
// file is not an error.
func (s *FileStore) Lookup(systemID []byte, id uint16) (wire.ConfigObjectList, bool, error) {
	if IsStandardConfig(id) {
		return s.std.Lookup(systemID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(systemID, id))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec Record
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	objs, err := rec.ConfigObjects()
	if err != nil {
		return nil, false, err
	}
	return objs, true, nil
}

// Save writes a configuration. Standard configurations are kept in memory.
func (s *FileStore) Save(systemID []byte, id uint16, objs wire.ConfigObjectList) error {
	if IsStandardConfig(id) {
		return s.std.Save(systemID, id, objs)
	}

	rec, err := NewRecord(systemID, id, objs)
	if err != nil {
		return err
	}
	data, err := cbor.Marshal(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	// Write then rename so a crash never leaves a torn record.
	p := s.path(systemID, id)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Remove deletes a stored extended configuration.
func (s *FileStore) Remove(systemID []byte, id uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(systemID, id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
