package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/mprisctl/internal/artwork"
	"github.com/genricoloni/mprisctl/internal/bus"
	"github.com/genricoloni/mprisctl/internal/config"
	"github.com/genricoloni/mprisctl/internal/domain"
	"github.com/genricoloni/mprisctl/internal/engine"
	"github.com/genricoloni/mprisctl/internal/fetcher"
	"github.com/genricoloni/mprisctl/internal/notify"
	"github.com/genricoloni/mprisctl/internal/playback"
	"github.com/genricoloni/mprisctl/internal/player"
	"github.com/genricoloni/mprisctl/internal/search"
	"github.com/genricoloni/mprisctl/internal/selector"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args, executes the command and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := &rootFlags{}
	console := selector.Console{In: stdin, Out: stdout}

	var execErr error
	root := newRootCmd(flags, func(cmd *cobra.Command, c domain.Command) error {
		execErr = execute(cmd.Context(), flags, console, c)
		return execErr
	})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if execErr != nil {
			return exitFailure
		}
		return exitUsage
	}
	return exitOK
}

// execute builds the application graph, runs c through the engine and tears
// the graph down again
func execute(ctx context.Context, flags *rootFlags, console selector.Console, c domain.Command) error {
	var eng *engine.Engine
	app := fx.New(
		AppOptions(flags, console),
		fx.Populate(&eng),
	)
	if err := app.Err(); err != nil {
		return dig.RootCause(err)
	}

	if err := app.Start(ctx); err != nil {
		return dig.RootCause(err)
	}

	runErr := eng.Execute(ctx, c)

	// Stop with a fresh context so cleanup still runs after an interrupt
	stopErr := app.Stop(context.Background())
	return multierr.Append(runErr, stopErr)
}

// AppOptions returns the dependency graph for one invocation
func AppOptions(flags *rootFlags, console selector.Console) fx.Option {
	return fx.Options(
		// Logger configuration. Graph errors are printed by run, fx logs them at debug
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log}
			l.UseErrorLevel(zapcore.DebugLevel)
			return l
		}),

		fx.Supply(flags, console),

		// Provide dependencies
		fx.Provide(
			func(f *rootFlags) (*zap.Logger, error) { return newLogger(f.verbose) },
			func() afero.Fs { return afero.NewOsFs() },
			newConfig,
			func(cfg *config.AppConfig) domain.Config { return cfg },
			fx.Annotate(bus.NewLifecycleDBusClient, fx.As(new(bus.DBusClient))),
			fx.Annotate(player.NewMprisPlayer, fx.As(new(domain.RemotePlayer))),
			newSearchService,
			newFetcher,
			newArtworkWriter,
			newNotifier,
			fx.Annotate(selector.NewSelector, fx.As(new(domain.TrackSelector))),
			fx.Annotate(playback.NewDispatcher, fx.As(new(domain.PlaybackDispatcher))),
			newEngine,
		),

		// Lifecycle hooks
		fx.Invoke(registerHooks),
	)
}

// newLogger creates a new zap logger instance. Only warnings and errors are
// logged unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newConfig(logger *zap.Logger, fs afero.Fs, flags *rootFlags) (*config.AppConfig, error) {
	return config.NewAppConfig(logger, fs, config.Options{
		Path:        flags.configPath,
		ServiceName: flags.serviceName,
	})
}

func newSearchService(logger *zap.Logger, cfg *config.AppConfig) domain.SearchService {
	return search.NewClient(logger, cfg.Search.BaseURL, cfg.GetHTTPTimeout())
}

func newFetcher(logger *zap.Logger, fs afero.Fs, cfg *config.AppConfig) domain.Fetcher {
	return fetcher.NewHTTPFetcher(logger, fs, cfg.GetHTTPTimeout())
}

func newArtworkWriter(logger *zap.Logger, fs afero.Fs, cfg *config.AppConfig) domain.ArtworkWriter {
	return artwork.NewIconWriter(logger, fs, cfg.Artwork.TempDir, cfg.Artwork.IconSize)
}

// newNotifier picks the notification backend named in the config. The
// command backend is detected on first use.
func newNotifier(logger *zap.Logger, cfg *config.AppConfig, conn bus.DBusClient) (domain.Notifier, error) {
	switch cfg.Notification.Backend {
	case config.BackendNotifySend:
		return notify.NewLazy(func() (domain.Notifier, error) {
			n, err := notify.NewCommandNotifier(logger)
			if err != nil {
				return nil, err
			}
			return n, nil
		}), nil
	case config.BackendDBus:
		return notify.NewDBusNotifier(logger, conn), nil
	default:
		return nil, errors.New("unknown notification backend: " + cfg.Notification.Backend)
	}
}

func newEngine(
	logger *zap.Logger,
	cfg domain.Config,
	pl domain.RemotePlayer,
	ss domain.SearchService,
	sel domain.TrackSelector,
	disp domain.PlaybackDispatcher,
	fetch domain.Fetcher,
	art domain.ArtworkWriter,
	n domain.Notifier,
	console selector.Console,
) *engine.Engine {
	return engine.NewEngine(logger, cfg, pl, ss, sel, disp, fetch, art, n, console.Out)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, cfg domain.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("mprisctl started", zap.String("service", cfg.GetServiceName()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Debug("Shutting down")
			return nil
		},
	})
}
