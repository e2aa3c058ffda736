package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bigpicture/internal/config"
	"github.com/aretw0/bigpicture/internal/logging"
	"github.com/aretw0/bigpicture/pkg/adapters/file"
	"github.com/aretw0/bigpicture/pkg/adapters/memory"
	"github.com/aretw0/bigpicture/pkg/adapters/redis"
	"github.com/aretw0/bigpicture/pkg/ports"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bigpicture",
	Short: "Bigpicture is a collaborative Event Storming engine",
	Long:  `Bigpicture lets you map business domains as Event Storming workshops: events, commands, actors and policies on a shared timeline, queryable from the CLI, an HTTP API or an MCP server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ~/.bigpicture/config.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the workshop files (file backend)")
	rootCmd.PersistentFlags().String("store", "", "Store backend: 'file', 'memory' or 'redis'")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address (redis backend)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig resolves the effective configuration: file values first,
// then flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		cfg.Store.Dir = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Backend = v
	}
	if v, _ := cmd.Flags().GetString("redis-addr"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return logging.New(level)
}

func newStore(cfg config.Config) (ports.WorkshopStore, error) {
	switch cfg.Store.Backend {
	case "file", "":
		dir := cfg.Store.Dir
		if dir == "" {
			dir = "."
		}
		return file.New(dir), nil
	case "memory":
		return memory.New(), nil
	case "redis":
		var opts []redis.Option
		if cfg.Store.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Store.Redis.TTL))
		}
		if cfg.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Redis.Prefix))
		}
		return redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s. Supported: file, memory, redis", cfg.Store.Backend)
	}
}

// buildService wires the configured store and logger into a workshop service.
func buildService(cmd *cobra.Command) (*workshop.Service, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	store, err := newStore(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return workshop.NewService(store, newLogger(cfg)), cfg, nil
}
