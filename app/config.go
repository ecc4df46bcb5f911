package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"

	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// Config holds the settings the application layer needs. The daemon fills it
// from the config file, the environment and flags.
type Config struct {
	DBBackend   string   `mapstructure:"backend"`
	DBDir       string   `mapstructure:"dir"`
	LogLevel    string   `mapstructure:"level"`
	LogFormat   string   `mapstructure:"format"`
	GenesisFile string   `mapstructure:"file"`
	Authorities []string `mapstructure:"authorities"`
}

// DefaultConfig returns a config rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		DBBackend:   string(dbm.GoLevelDBBackend),
		DBDir:       filepath.Join(home, "data"),
		LogLevel:    zerolog.InfoLevel.String(),
		LogFormat:   LogFormatPlain,
		GenesisFile: filepath.Join(home, "config", "genesis.json"),
	}
}

// Validate checks the config for obvious mistakes.
func (c Config) Validate() error {
	switch dbm.BackendType(c.DBBackend) {
	case dbm.MemDBBackend:
	case dbm.GoLevelDBBackend:
		if c.DBDir == "" {
			return fmt.Errorf("db.dir is required for the %s backend", c.DBBackend)
		}
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != LogFormatPlain && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if _, err := dextypes.AddressListAuthorityFromBech32(c.Authorities); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the process logger from the config.
func NewLogger(c Config) (log.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	opts := []log.Option{log.LevelOption(level)}
	if c.LogFormat == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...), nil
}

// OpenDB opens the configured database backend.
func OpenDB(c Config) (dbm.DB, error) {
	backend := dbm.BackendType(c.DBBackend)
	if backend == dbm.GoLevelDBBackend {
		if err := os.MkdirAll(c.DBDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
	}
	db, err := dbm.NewDB("dex", backend, c.DBDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s db: %w", backend, err)
	}
	return db, nil
}
