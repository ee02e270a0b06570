package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	readiness "github.com/alnah/go-readiness-report"
)

// Version is set at build time via ldflags.
var Version = "dev"

// serverFlags holds command-line flags. Flags override environment
// variables, which override the YAML config file.
type serverFlags struct {
	configPath string
	addr       string
	workers    int
	verbose    bool
	version    bool
}

func parseFlags(args []string) (*serverFlags, error) {
	fs := flag.NewFlagSet("reportd", flag.ContinueOnError)

	f := &serverFlags{}
	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (overrides config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser pool size (overrides config, 0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Println("reportd", Version)
		return nil
	}

	logger, err := newLogger(flags.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		logger.Debug(fmt.Sprintf(format, a...))
	}))

	cfg, err := resolveConfig(flags, logger)
	if err != nil {
		return err
	}

	poolSize := readiness.ResolvePoolSize(cfg.Pool.Workers)
	pool := readiness.NewServicePool(poolSize,
		readiness.WithTimeout(cfg.PDFTimeout()),
		readiness.WithSettleWait(cfg.SettleWait()),
		readiness.WithDateFormat(cfg.Report.DateFormat),
		readiness.WithOrganization(cfg.Report.Organization),
	)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing service pool", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv := newServer(logger, &pooledSource{pool: pool}, reg)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.router(reg),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Int("pool_size", poolSize),
			zap.String("version", Version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// resolveConfig merges the YAML file, environment and flags in
// ascending precedence and validates the outcome.
func resolveConfig(flags *serverFlags, logger *zap.Logger) (*Config, error) {
	cfg := DefaultConfig()

	if flags.configPath != "" {
		loaded, err := LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if applied := applyEnv(cfg, os.Getenv); len(applied) > 0 {
		logger.Debug("applied environment overrides", zap.Strings("vars", applied))
	}
	if unknown := unknownEnvVars(os.Environ()); len(unknown) > 0 {
		logger.Warn("unknown REPORTD_* environment variables", zap.Strings("vars", unknown))
	}

	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.workers > 0 {
		cfg.Pool.Workers = flags.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger; verbose switches to a
// development config with debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
