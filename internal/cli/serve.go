package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/internal/api"
	"github.com/tablekit/tablekit/pkg/cache"
	"github.com/tablekit/tablekit/pkg/session"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configFile string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve datasets over HTTP",
		Long: `Serve starts the tablekit HTTP API. Clients upload datasets with
POST /api/tables and page through them with GET /api/tables/{id}/rows.
Sessions and evaluated pages are kept in the configured backends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if noCache {
				cfg.Server.Cache = "none"
			}

			sessions, err := newSessionStore(cmd, cfg)
			if err != nil {
				return err
			}
			resultCache, err := newServerCache(cmd, cfg)
			if err != nil {
				return err
			}
			defer resultCache.Close()

			srv, err := api.NewServer(api.Config{
				Addr:       cfg.Server.Addr,
				SessionTTL: cfg.Server.ParsedSessionTTL(),
			}, c.Logger, sessions, resultCache, cache.NewDefaultKeyer())
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// newSessionStore builds the session backend named in the config.
func newSessionStore(cmd *cobra.Command, cfg Config) (session.Store, error) {
	switch cfg.Server.SessionStore {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore("")
	case "redis":
		return session.NewRedisStore(cmd.Context(), session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown session store %q (use memory, file or redis)", cfg.Server.SessionStore)
	}
}

// newServerCache builds the result cache backend named in the config.
// A failed file cache falls back to no caching with a warning.
func newServerCache(cmd *cobra.Command, cfg Config) (cache.Cache, error) {
	switch cfg.Server.Cache {
	case "none":
		return cache.NewNullCache(), nil
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			printWarning("cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			printWarning("cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	case "redis":
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q (use file, redis or none)", cfg.Server.Cache)
	}
}
