package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/internal/config"
	"github.com/getmockd/soapmock/pkg/lifecycle"
	"github.com/getmockd/soapmock/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath  string
	baseDir     string
	hostBaseDir string
	runtimeKind string
	logLevel    string
	logFormat   string
	logFile     string
	jsonOutput  bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// Loaded by the root command before any subcommand runs.
var (
	cfg     *config.Config
	logger  *slog.Logger
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soapmock",
	Short: "soapmock turns WSDL files into running Imposter SOAP mocks",
	Long: `soapmock generates Imposter mock projects from WSDL files, validates them,
and runs each project in its own outofcoffee/imposter container.

Projects live in a base directory (default ./projets_mocks), one
sub-directory per project. Settings come from flags, SOAPMOCK_* environment
variables, or a YAML file given with --config.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logSink != nil {
			_ = logSink.Close()
		}
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", os.Getenv("SOAPMOCK_CONFIG"), "YAML configuration file")
	flags.StringVar(&baseDir, "base-dir", "", "Directory holding the projects (default ./projets_mocks)")
	flags.StringVar(&hostBaseDir, "host-base-dir", "", "Base directory as seen by the Docker daemon")
	flags.StringVar(&runtimeKind, "runtime", "", "Container runtime: cli or docker")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	flags.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// setup loads the configuration, applies flag overrides, and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd {
		return nil
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		loaded.BaseDir = baseDir
	}
	if flags.Changed("host-base-dir") {
		loaded.HostBaseDir = hostBaseDir
	}
	if flags.Changed("runtime") {
		loaded.Runtime = runtimeKind
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = logFormat
	}
	if flags.Changed("log-file") {
		loaded.Log.File = logFile
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logCfg := loaded.Log.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if loaded.Log.File != "" {
		f, err := os.OpenFile(loaded.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logCfg.Tee = f
		logSink = f
	}

	cfg = loaded
	logger = logging.New(logCfg)
	logger.Debug("configuration loaded", "baseDir", cfg.BaseDir, "runtime", cfg.Runtime, "network", cfg.Network)
	return nil
}

// printError writes err to w. Start failures caused by a container that
// exited also print the container log tail.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var exited *lifecycle.ContainerExitedError
	if errors.As(err, &exited) && exited.Logs != "" {
		fmt.Fprintf(w, "\nLast log lines of %s:\n%s\n", exited.Container, indent(exited.Logs))
	}
}
