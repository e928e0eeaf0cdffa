package service

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/specialization"
)

// FileConfig is the serialisable subset of Config.
type FileConfig struct {
	Role                 string        `yaml:"role"`
	SystemID             string        `yaml:"system_id"`
	AssociationTimeout   time.Duration `yaml:"association_timeout"`
	ConfigurationTimeout time.Duration `yaml:"configuration_timeout"`
	ReleaseTimeout       time.Duration `yaml:"release_timeout"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	AcceptUnknownConfig  *bool         `yaml:"accept_unknown_config"`
	ConfigStoreDir       string        `yaml:"config_store_dir"`
	LogLevel             string        `yaml:"log_level"`
}

// ParseConfig parses YAML and merges it over the defaults of its role.
func ParseConfig(b []byte) (Config, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return fc.apply()
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

func (fc *FileConfig) apply() (Config, error) {
	var cfg Config
	switch strings.ToLower(fc.Role) {
	case "", "manager":
		cfg = DefaultManagerConfig()
	case "agent":
		cfg = DefaultAgentConfig()
	default:
		return Config{}, fmt.Errorf("%w: role %q", ErrInvalidConfig, fc.Role)
	}

	if fc.SystemID != "" {
		id, err := hex.DecodeString(strings.ReplaceAll(fc.SystemID, ":", ""))
		if err != nil || len(id) != 8 {
			return Config{}, fmt.Errorf("%w: system_id %q", ErrInvalidConfig, fc.SystemID)
		}
		cfg.SystemID = id
	}
	setDuration(&cfg.AssociationTimeout, fc.AssociationTimeout)
	setDuration(&cfg.ConfigurationTimeout, fc.ConfigurationTimeout)
	setDuration(&cfg.ReleaseTimeout, fc.ReleaseTimeout)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	if fc.AcceptUnknownConfig != nil {
		cfg.AcceptUnknownConfig = *fc.AcceptUnknownConfig
	}

	if fc.ConfigStoreDir != "" {
		store := persistence.NewFileStore(fc.ConfigStoreDir)
		if err := specialization.Register(store); err != nil {
			return Config{}, err
		}
		cfg.ConfigStore = store
	}

	if fc.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(fc.LogLevel)); err != nil {
			return Config{}, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, fc.LogLevel)
		}
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return cfg, nil
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
