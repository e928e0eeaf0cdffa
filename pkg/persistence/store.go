package persistence

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phd-protocol/phd-go/pkg/wire"
)

// RecordVersion is the current version of the record format.
const RecordVersion = 1

// Store errors.
var (
	ErrBadRecord = errors.New("malformed configuration record")
)

// Record is the on-disk form of one configuration.
type Record struct {
	Version     int       `cbor:"1,keyasint"`
	SavedAt     time.Time `cbor:"2,keyasint"`
	SystemID    []byte    `cbor:"3,keyasint,omitempty"`
	DevConfigID uint16    `cbor:"4,keyasint"`

	// Objects is the MDER-encoded ConfigObjectList.
	Objects []byte `cbor:"5,keyasint"`
}

// NewRecord encodes a configuration.
func NewRecord(systemID []byte, id uint16, objs wire.ConfigObjectList) (*Record, error) {
	b, err := wire.Marshal(objs)
	if err != nil {
		return nil, err
	}
	return &Record{
		Version:     RecordVersion,
		SavedAt:     time.Now(),
		SystemID:    append([]byte(nil), systemID...),
		DevConfigID: id,
		Objects:     b,
	}, nil
}

// ConfigObjects decodes the stored object list.
func (r *Record) ConfigObjects() (wire.ConfigObjectList, error) {
	if r.Version != RecordVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadRecord, r.Version)
	}
	objs, err := wire.Unmarshal(r.Objects, wire.DecodeConfigObjectList)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return objs, nil
}

// IsStandardConfig reports whether id is in the range reserved for
// standard configurations.
func IsStandardConfig(id uint16) bool {
	return id >= wire.StandardConfigStart && id <= wire.StandardConfigEnd
}

type key struct {
	system string
	id     uint16
}

func keyFor(systemID []byte, id uint16) key {
	if IsStandardConfig(id) {
		return key{id: id}
	}
	return key{system: hex.EncodeToString(systemID), id: id}
}

// MemoryStore keeps configurations in memory. It is safe for concurrent
// use.
type MemoryStore struct {
	mu      sync.RWMutex
	configs map[key]wire.ConfigObjectList
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{configs: make(map[key]wire.ConfigObjectList)}
}

// RegisterStandard registers a standard configuration.
func (s *MemoryStore) RegisterStandard(id uint16, objs wire.ConfigObjectList) error {
	if !IsStandardConfig(id) {
		return fmt.Errorf("%w: 0x%04x is not a standard configuration", ErrBadRecord, id)
	}
	return s.Save(nil, id, objs)
}

// Lookup returns the configuration known for (systemID, id).
func (s *MemoryStore) Lookup(systemID []byte, id uint16) (wire.ConfigObjectList, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objs, ok := s.configs[keyFor(systemID, id)]
	return objs, ok, nil
}

// Save stores a configuration, replacing any previous one.
func (s *MemoryStore) Save(systemID []byte, id uint16, objs wire.ConfigObjectList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[keyFor(systemID, id)] = objs
	return nil
}

// Len returns the number of configurations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.configs)
}
