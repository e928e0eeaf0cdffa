package service

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phd-protocol/phd-go/pkg/log"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// ConfigStore remembers device configurations across associations. It
// is satisfied by *persistence.MemoryStore and *persistence.FileStore.
type ConfigStore interface {
	Lookup(systemID []byte, id uint16) (wire.ConfigObjectList, bool, error)
	Save(systemID []byte, id uint16, objs wire.ConfigObjectList) error
}

var (
	_ ConfigStore = (*persistence.MemoryStore)(nil)
	_ ConfigStore = (*persistence.FileStore)(nil)
)

// AgentConfig describes the local device of an agent context.
type AgentConfig struct {
	// MDS is the local device. Its SystemID and DevConfigID are sent in
	// the AARQ.
	MDS *model.MDS

	// Config is the object list sent when the manager does not know the
	// configuration.
	Config wire.ConfigObjectList
}

// Config configures a Context.
type Config struct {
	// Role selects manager or agent behaviour.
	Role Role

	// SystemID is the EUI-64 of a manager. Agents use Agent.MDS.SystemID.
	SystemID []byte

	// AssociationTimeout bounds the wait for an AARE (agent).
	AssociationTimeout time.Duration

	// ConfigurationTimeout bounds the wait for a configuration report
	// (manager) or its response (agent).
	ConfigurationTimeout time.Duration

	// ReleaseTimeout bounds the wait for an RLRE.
	ReleaseTimeout time.Duration

	// RequestTimeout is the default timeout of confirmed requests.
	RequestTimeout time.Duration

	// DataReqModeCapab is advertised in association messages.
	DataReqModeCapab wire.DataReqModeCapab

	// AcceptUnknownConfig makes a manager accept any extended
	// configuration that builds a valid DIM tree. When false only
	// configurations already in ConfigStore are accepted.
	AcceptUnknownConfig bool

	// Agent describes the local device. Required for RoleAgent.
	Agent AgentConfig

	// ConfigStore holds known configurations. If nil, a memory store
	// holding the standard configurations is used.
	ConfigStore ConfigStore

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives a capture of every APDU and state change.
	// If nil, nothing is captured.
	ProtocolLogger log.Logger

	// Registerer, when set, receives the context metrics.
	Registerer prometheus.Registerer
}

// DefaultManagerConfig returns a manager Config with sensible defaults.
func DefaultManagerConfig() Config {
	return Config{
		Role:                 RoleManager,
		SystemID:             []byte{0x50, 0x48, 0x44, 0x2D, 0x4D, 0x47, 0x52, 0x01},
		AssociationTimeout:   10 * time.Second,
		ConfigurationTimeout: 10 * time.Second,
		ReleaseTimeout:       3 * time.Second,
		RequestTimeout:       3 * time.Second,
		DataReqModeCapab: wire.DataReqModeCapab{
			Flags: wire.DataReqSuppModeSingleRsp | wire.DataReqSuppInitAgent,
		},
		AcceptUnknownConfig: true,
	}
}

// DefaultAgentConfig returns an agent Config with sensible defaults. The
// caller supplies Agent.
func DefaultAgentConfig() Config {
	return Config{
		Role:                 RoleAgent,
		AssociationTimeout:   10 * time.Second,
		ConfigurationTimeout: 10 * time.Second,
		ReleaseTimeout:       3 * time.Second,
		RequestTimeout:       3 * time.Second,
		DataReqModeCapab: wire.DataReqModeCapab{
			Flags:          wire.DataReqSuppInitAgent,
			InitAgentCount: 1,
		},
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.AssociationTimeout <= 0 || c.ConfigurationTimeout <= 0 ||
		c.ReleaseTimeout <= 0 || c.RequestTimeout <= 0 {
		return ErrInvalidConfig
	}
	switch c.Role {
	case RoleManager:
		if len(c.SystemID) == 0 {
			return ErrInvalidConfig
		}
	case RoleAgent:
		if c.Agent.MDS == nil || len(c.Agent.MDS.SystemID) == 0 {
			return ErrInvalidConfig
		}
		id := c.Agent.MDS.DevConfigID
		if id < wire.StandardConfigStart || id > wire.ExtendedConfigEnd {
			return ErrInvalidConfig
		}
		if id >= wire.ExtendedConfigStart && len(c.Agent.Config) == 0 {
			return ErrInvalidConfig
		}
	default:
		return ErrInvalidConfig
	}
	return nil
}
