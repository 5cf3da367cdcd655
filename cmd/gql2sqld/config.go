package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// RelationDefault overrides the foreign-key/primary-key pair the compiler
// would otherwise derive for a relation whose @relation directive omits
// field/references, keyed by "Parent.child" field path.
type RelationDefault struct {
	ForeignKey string `yaml:"foreignKey"`
	PrimaryKey string `yaml:"primaryKey"`
}

// Config is gql2sqld's on-disk configuration.
type Config struct {
	ListenAddr       string                     `yaml:"listenAddr"`
	DatabaseURL      string                     `yaml:"databaseUrl"`
	SlowQueryMillis  int                        `yaml:"slowQueryMillis"`
	RelationDefaults map[string]RelationDefault `yaml:"relationDefaults"`
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		SlowQueryMillis: 100,
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gql2sqld: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("gql2sqld: parse config: %w", err)
	}
	return cfg, nil
}

// configStore holds the live Config behind an atomic pointer so the
// handler can pick up a hot-reloaded relation-defaults file without
// locking per request.
type configStore struct {
	v atomic.Pointer[Config]
}

func newConfigStore(cfg *Config) *configStore {
	s := &configStore{}
	s.v.Store(cfg)
	return s
}

func (s *configStore) Get() *Config { return s.v.Load() }

// watchConfig reloads path whenever fsnotify reports it changed, storing
// the new value into store. Parse failures are logged and the previous
// config is kept, so a bad edit never takes the server down.
func watchConfig(path string, store *configStore) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("gql2sqld: watch config: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("gql2sqld: watch config: %w", err)
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := loadConfig(path)
				if err != nil {
					slog.Error("config reload failed, keeping previous config", "path", path, "error", err)
					continue
				}
				store.v.Store(cfg)
				slog.Info("config reloaded", "path", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher error", "error", err)
			}
		}
	}()
	return watcher, nil
}
