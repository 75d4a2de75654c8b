package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/depmerge/internal/automerge"
	"github.com/simplesurance/depmerge/internal/cfg"
	"github.com/simplesurance/depmerge/internal/fleet"
	"github.com/simplesurance/depmerge/internal/githubclt"
	"github.com/simplesurance/depmerge/internal/logfields"
)

const appName = "depmerge"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught , terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

func startMetricsServer(listenAddr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := http.Server{
		Addr:    listenAddr,
		Handler: mux,
	}

	goodbye.Register(func(context.Context, os.Signal) {
		const shutdownTimeout = 30 * time.Second
		ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		logger.Debug(
			"terminating metrics http server",
			logfields.Event("http_server_terminating"),
			zap.Duration("shutdown_timeout", shutdownTimeout),
		)

		err := httpServer.Shutdown(ctx)
		if err != nil {
			logger.Warn(
				"shutting down metrics http server failed",
				logfields.Event("http_server_termination_failed"),
				zap.Error(err),
			)
		}
	})

	go func() {
		defer panicHandler()

		logger.Info(
			"metrics http server started",
			logfields.Event("http_server_started"),
			zap.String("listenAddr", listenAddr),
		)

		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			logger.Info("metrics http server terminated", logfields.Event("http_server_terminated"))
			return
		}

		logger.Fatal(
			"metrics http server terminated unexpectedly",
			logfields.Event("http_server_terminated_unexpectedly"),
			zap.Error(err),
		)
	}()
}

type arguments struct {
	Verbose          *bool
	ConfigFile       *string
	ShowVersion      *bool
	Update           *string
	Library          *string
	MaxMergedAgeDays *uint
	Merge            *bool
	AutoMerge        *bool
	Interval         *time.Duration
}

var args arguments

const defConfigFile = "/etc/depmerge/config.toml"

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ConfigFile: pflag.StringP(
			"cfg-file",
			"c",
			defConfigFile,
			"path to the depmerge configuration file",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
		Update: pflag.StringP(
			"update",
			"u",
			"",
			"dependency update to process, either \"non-major\", \"pnpm\" or a version string like \"v11.2.0\" (requires --library)",
		),
		Library: pflag.StringP(
			"library",
			"l",
			"",
			"name of the library when --update is a version string",
		),
		MaxMergedAgeDays: pflag.Uint(
			"max-merged-age-days",
			uint(automerge.DefMaxMergedAge/(24*time.Hour)),
			"consider an already merged all-non-major pull request as up-to-date if it was merged less then the given number of days ago",
		),
		Merge: pflag.Bool(
			"merge",
			true,
			"merge pull requests that are ready, disable to only evaluate and log what would happen",
		),
		AutoMerge: pflag.Bool(
			"auto-merge",
			false,
			"enable GitHub auto-merge on ready pull requests instead of merging them directly, falls back to a direct merge if the repository does not support it",
		),
		Interval: pflag.Duration(
			"interval",
			0,
			"when set, process all repositories repeatedly with the given pause in between instead of exiting after one pass",
		),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nApprove and merge automated dependency update pull requests.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	file, err := os.Open(*args.ConfigFile)
	exitOnErr("could not open configuration file", err)
	defer file.Close()

	config, err := cfg.Load(file)
	if err != nil {
		exitOnErr(fmt.Sprintf("could not load configuration file: %s", *args.ConfigFile), err)
	}

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr("could not initialize logger", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s \n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func automergerOpts(config *cfg.Config) []automerge.Opt {
	opts := []automerge.Opt{
		automerge.WithOptOutTopic(config.OptOutTopic),
		automerge.WithMaxMergedAge(time.Duration(*args.MaxMergedAgeDays) * 24 * time.Hour),
	}

	if !*args.Merge {
		opts = append(opts, automerge.WithoutMerging())
	}

	if *args.AutoMerge {
		opts = append(opts, automerge.WithPlatformAutoMerge())
	}

	return opts
}

func main() {
	defer panicHandler()

	defer goodbye.Exit(context.Background(), 1)
	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	config := mustParseCfg()

	mustInitLogger(config)

	update, err := automerge.ResolveUpdate(*args.Update, *args.Library)
	exitOnErr("invalid --update/--library arguments", err)

	repositories, err := fleet.FilterRepositories(config.RepositoryFilterQuery, config.Repositories)
	exitOnErr("could not apply repository_filter_query from configuration file", err)

	if len(repositories) == 0 {
		fmt.Fprintf(os.Stderr, "ERROR: config file %s does not define any repositories matching the filter, nothing to do\n", *args.ConfigFile)
		os.Exit(1)
	}

	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *args.ConfigFile),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("log_format", config.LogFormat),
		zap.String("log_time_key", config.LogTimeKey),
		zap.String("log_level", config.LogLevel),
		zap.String("opt_out_topic", config.OptOutTopic),
		zap.String("http_metrics_listen_addr", config.MetricsListenAddr),
		zap.String("repository_filter_query", config.RepositoryFilterQuery),
		zap.Int("repositories", len(repositories)),
		zap.String("update", update.TitlePrefix),
	)

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	ctx, cancelFn := context.WithCancel(context.Background())
	goodbye.Register(func(context.Context, os.Signal) { cancelFn() })

	githubClient := githubclt.New(config.GithubAPIToken)

	automerger := automerge.New(githubClient, update, automergerOpts(config)...)

	retryer := fleet.NewRetryer()
	goodbye.Register(func(context.Context, os.Signal) { retryer.Stop() })

	runner := fleet.NewRunner(automerger, repositories, retryer)

	if config.MetricsListenAddr != "" {
		startMetricsServer(config.MetricsListenAddr)
	}

	for {
		summary, err := runner.Run(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}

			logger.Fatal(
				"processing repositories failed",
				logfields.Event("pass_failed"),
				zap.Error(err),
			)
		}

		if *args.Interval == 0 {
			if summary.Failed > 0 {
				goodbye.Exit(ctx, 1)
			}

			goodbye.Exit(ctx, 0)
		}

		logger.Debug(
			"sleeping until next pass",
			logfields.Event("pass_sleeping"),
			zap.Duration("interval", *args.Interval),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(*args.Interval):
		}
	}
}
