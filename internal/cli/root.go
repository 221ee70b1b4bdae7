package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/focus/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Opener wires an App for the resolved configuration. cleanup, when not
// nil, runs once after the command finishes.
type Opener func(ctx context.Context, cfg config.Config) (app *App, cleanup func() error, err error)

type rootFlags struct {
	configPath string
	dbPath     string
	store      string
	redisAddr  string
	logLevel   string
}

func (f *rootFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "config file (default ~/.focus/config.yaml)")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database path")
	fs.StringVar(&f.store, "store", "", "timer state backend: sqlite or redis")
	fs.StringVar(&f.redisAddr, "redis-addr", "", "Redis address when --store=redis")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// apply overrides cfg with any flag the user set explicitly.
func (f rootFlags) apply(cfg *config.Config) {
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.store != "" {
		cfg.Store = config.StoreBackend(f.store)
	}
	if f.redisAddr != "" {
		cfg.Redis.Addr = f.redisAddr
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
}

type rootState struct {
	open    Opener
	flags   rootFlags
	app     *App
	cleanup func() error
}

func (r *rootState) setup(ctx context.Context) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	path := r.flags.configPath
	if path == "" {
		path = config.DefaultPath(home)
	}

	cfg, err := config.Load(path, home)
	if err != nil {
		return err
	}
	r.flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, cleanup, err := r.open(ctx, cfg)
	if err != nil {
		return err
	}
	if app.Presets == nil {
		app.Presets = cfg.Presets
	}
	*r.app = *app
	r.cleanup = cleanup
	return nil
}

func (r *rootState) close() error {
	if r.cleanup == nil {
		return nil
	}
	cleanup := r.cleanup
	r.cleanup = nil
	return cleanup()
}

// NewRootCmd creates the top-level "focus" command. The App is opened
// lazily, after flags are parsed, so commands see the final configuration.
func NewRootCmd(open Opener) *cobra.Command {
	root, _ := newRoot(open)
	return root
}

// Execute runs the command tree and always releases what the Opener
// acquired, including when the command fails.
func Execute(ctx context.Context, open Opener) error {
	root, rt := newRoot(open)
	err := root.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	return err
}

func newRoot(open Opener) (*cobra.Command, *rootState) {
	app := &App{}
	rt := &rootState{open: open, app: app}

	root := &cobra.Command{
		Use:           "focus",
		Short:         "Focus countdown timer that survives restarts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runWatch(cmd, app)
			}
			return cmd.Help()
		},
	}

	rt.flags.bind(root.PersistentFlags())

	root.AddCommand(
		newStartCmd(app),
		newPauseCmd(app),
		newResetCmd(app),
		newPresetCmd(app),
		newStatusCmd(app),
		newShowCmd(app),
		newHideCmd(app),
		newHistoryCmd(app),
		newWatchCmd(app),
	)

	return root, rt
}
