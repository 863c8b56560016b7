package service

import (
	"fmt"
	"io"

	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/osutil"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// Services holds all service instances used by the application
type Services struct {
	Log    *LogService
	Stats  *StatsService
	Report *ReportService
	Export *ExportService
	Config *ConfigService

	kv      storage.KV
	dataDir string
}

// Options override what NewServices would read from the config file.
type Options struct {
	DataDir string    // --data-dir
	Backend string    // --backend
	LogOut  io.Writer // receives storage driver warnings
}

// NewServices loads config.toml, opens the configured backend and wires
// every service.
func NewServices(opts Options) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	dataDir, err = osutil.ResolveDataDir(dataDir)
	if err != nil {
		return nil, err
	}

	backend := cfg.StorageBackend
	if opts.Backend != "" {
		backend = opts.Backend
	}

	kv, err := storage.Open(backend, dataDir, opts.LogOut)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return NewServicesWithKV(kv, dataDir, configPath, cfg)
}

// NewServicesWithKV wires services around an already opened backend
// (useful for testing).
func NewServicesWithKV(kv storage.KV, dataDir, configPath string, cfg config.Config) (*Services, error) {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	logService := NewLogService(kv, loc)
	statsService := NewStatsService(logService)

	return &Services{
		Log:     logService,
		Stats:   statsService,
		Report:  NewReportService(statsService),
		Export:  NewExportService(logService),
		Config:  NewConfigService(configPath, cfg),
		kv:      kv,
		dataDir: dataDir,
	}, nil
}

// DataDir returns the directory holding the food log.
func (s *Services) DataDir() string {
	return s.dataDir
}

// StorageLocation describes where the log lives, for display.
func (s *Services) StorageLocation() string {
	switch kv := s.kv.(type) {
	case *storage.FileKV:
		return kv.Path(storeKey)
	case *storage.SQLiteKV:
		return kv.Path()
	default:
		return "memory"
	}
}

// Close releases the storage backend.
func (s *Services) Close() error {
	return s.kv.Close()
}
