// Package runtime wires configuration, storage and services for one process.
package runtime

import (
	"context"
	"os"
	"time"

	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/config"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/kpi"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/output"
	"github.com/manav03panchal/careeros/internal/remote"
	"github.com/manav03panchal/careeros/internal/repository"
	"github.com/manav03panchal/careeros/internal/seed"
	"github.com/manav03panchal/careeros/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.RuntimeConfig
	Formatter *output.Formatter

	Store     *repository.Store
	Seeder    *seed.Service
	Mapper    *kpi.Mapper
	Checklist *checklist.Service

	// Debug mode
	Debug bool

	kv     *storage.DB
	client *remote.Client
	target string
}

// Options configures the runtime context.
type Options struct {
	Config    config.Options
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// SkipSeed disables the bootstrap run even when seed.on_start is set.
	SkipSeed bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New loads configuration, opens the backend for the selected mode and builds
// every service on top of it. Unless disabled, it seeds the configured account.
func New(ctx context.Context, opts Options) (*Context, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, errs.NewUserError(err.Error(), "Check the file passed to --config.")
	}

	initLogging(cfg, opts.Debug)

	c := &Context{
		Config: cfg,
		Debug:  opts.Debug,
	}
	c.Formatter = output.NewFormatter()
	if opts.Format != "" {
		c.Formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		c.Formatter.ColorMode = opts.ColorMode
	}

	if err := c.open(ctx); err != nil {
		return nil, err
	}

	c.Seeder = seed.NewService(c.Store)
	c.Mapper = kpi.NewMapper(c.Store.KPIs)
	c.Checklist = checklist.NewService(c.Store, c.Mapper)

	if cfg.Seed.OnStart && !opts.SkipSeed {
		if _, err := c.Seeder.Bootstrap(ctx, cfg.Account); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func initLogging(cfg *config.RuntimeConfig, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		JSON:   cfg.Log.JSON,
		Output: os.Stderr,
	})
}

func (c *Context) open(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Mode {
	case config.ModeRemote:
		client, err := remote.Open(ctx, cfg.Remote)
		if err != nil {
			return err
		}
		c.client = client
		c.Store = remote.NewStore(client)
		c.target = logging.MaskDSN(cfg.Remote.URL)
	default:
		db, err := storage.Open(storage.Options{
			Path:     cfg.Storage.Path,
			InMemory: cfg.Storage.InMemory,
		})
		if err != nil {
			return errs.NewSystemErrorWithOp("open", "cannot open local store", err)
		}
		c.kv = db
		c.Store = storage.NewStore(db)
		c.target = db.Path()
		if c.target == "" {
			c.target = ":memory:"
		}
	}

	logging.Info("backend selected",
		logging.KeyMode, string(cfg.Mode),
		logging.KeyAccount, cfg.Account,
		"target", c.target,
		"remote_key", cfg.Remote.Key,
	)
	return nil
}

// Close releases the backing store.
func (c *Context) Close() error {
	switch {
	case c.client != nil:
		return c.client.Close()
	case c.kv != nil:
		return c.kv.Close()
	}
	return nil
}

// LocalStore returns the key-value store opened in mock mode.
func (c *Context) LocalStore() (*storage.DB, error) {
	if c.kv == nil {
		return nil, errs.NewUserError("This command only works with the local store", "").WithCause(errs.ErrLocalOnly)
	}
	return c.kv, nil
}

// Account returns the account every command is scoped to.
func (c *Context) Account() string {
	return c.Config.Account
}

// Mode returns the backend selected at load time.
func (c *Context) Mode() config.Mode {
	return c.Config.Mode
}

// ModeInfo describes the backend and the account's seed state.
func (c *Context) ModeInfo(ctx context.Context) (output.ModeInfo, error) {
	info := output.ModeInfo{
		Mode:    string(c.Config.Mode),
		Account: c.Config.Account,
		Target:  c.target,
	}
	marker, err := c.Seeder.Status(ctx, c.Config.Account)
	switch {
	case err == nil:
		info.Seed = marker
	case !errs.IsNotFound(err):
		return info, err
	}
	return info, nil
}

// Snapshot collects every record of the account.
func (c *Context) Snapshot(ctx context.Context) (*output.Snapshot, error) {
	acct := c.Config.Account
	snap := &output.Snapshot{
		Account:    acct,
		Mode:       string(c.Config.Mode),
		ExportedAt: model.Now().Format(time.RFC3339),
	}

	var err error
	if snap.KPIs, err = c.Store.KPIs.List(ctx, acct); err != nil {
		return nil, err
	}
	if snap.Companies, err = c.Store.Companies.List(ctx, acct); err != nil {
		return nil, err
	}
	if snap.Schedule, err = c.Store.Schedule.List(ctx, acct); err != nil {
		return nil, err
	}
	if snap.NonNegotiables, err = c.Store.NonNegotiables.List(ctx, acct); err != nil {
		return nil, err
	}
	if snap.Completions, err = c.Store.Completions.List(ctx, acct); err != nil {
		return nil, err
	}
	marker, err := c.Store.Markers.Get(ctx, acct)
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	snap.Seed = marker
	return snap, nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
