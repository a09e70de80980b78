package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ayn2op/waterflow"
	"github.com/ayn2op/waterflow/config"
)

var version = "dev"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("sections") {
		n := int(cmd.Int("sections"))
		if n < 0 {
			return ctx, fmt.Errorf("number of sections must not be negative, got %d", n)
		}
		env.Cfg.Demo.Sections = n
	}
	if cmd.IsSet("floating") {
		env.Cfg.Layout.StickyHeaders = cmd.Bool("floating")
	}
	if env.Log, err = env.Cfg.Logging.Prepare(cmd.Bool("debug")); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.redirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)

	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	if er := env.restoreLog(); er != nil && !ignorableSyncError(er) {
		err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
	}
	return
}

// ignorableSyncError filters errors returned when syncing a terminal, which
// cannot be synced.
func ignorableSyncError(err error) bool {
	for _, e := range multierr.Errors(err) {
		if !errors.Is(e, syscall.EINVAL) && !errors.Is(e, syscall.ENOTTY) {
			return false
		}
	}
	return true
}

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	envFromContext(ctx).Log.Error("Program ended with error", zap.Error(err))
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func runUI(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)

	u, err := newUI(env.Cfg, env.Log)
	if err != nil {
		return fmt.Errorf("unable to build screen: %w", err)
	}
	app := waterflow.NewApplication().SetLogger(env.Log).SetRoot(u.root)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			env.Log.Info("Interrupted")
			app.Stop()
		case <-done:
		}
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal failed: %w", err)
	}
	env.Log.Debug("Screen closed", zap.Int("views created", u.gallery.created), zap.Any("pools", u.grid.Engine().PoolStats()))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	var (
		err  error
		data []byte
	)
	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	out := os.Stdout
	if fname := cmd.Args().First(); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            config.AppName,
		Usage:           "masonry grid of variable height items in the terminal",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Action:          runUI,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "write everything to the log file"},
			&cli.IntFlag{Name: "sections", Aliases: []string{"s"}, Usage: "number of demo `SECTIONS`, overrides configuration"},
			&cli.BoolFlag{Name: "floating", Aliases: []string{"f"}, Usage: "keep section headers floating at the top, overrides configuration"},
		},
		Commands: []*cli.Command{
			{
				Name:         "dump",
				Usage:        "Prints the computed layout of the demo as YAML, no terminal needed",
				OnUsageError: usageErrorHandler,
				Action:       runDump,
				ArgsUsage:    "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: 80, Usage: "viewport `COLUMNS`"},
					&cli.IntFlag{Name: "height", Value: 24, Usage: "viewport `ROWS`"},
					&cli.IntFlag{Name: "offset", Usage: "content `ROW` scrolled to before dumping"},
				},
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// the screen is gone by now and the log may be closed, report
			// errors to stderr directly
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
