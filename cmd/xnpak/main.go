package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/xnpak/internal/app"
	"github.com/quantmind-br/xnpak/internal/config"
	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/manifest"
	"github.com/quantmind-br/xnpak/internal/utils"
	"github.com/quantmind-br/xnpak/pkg/version"
)

// Dependencies for testing
var isTerminal = utils.IsTerminal

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome to a process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, newStyles(stderr).Error.Render("Error: "+err.Error()))
	}
	return domain.ExitCode(err, manifest.IsManifestError)
}

// cli holds flag values and the viper instance they are bound to
type cli struct {
	v       *viper.Viper
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	verbose bool
	noCache bool
	noProg  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "xnpak",
		Short: "Build pak content from a manifest",
		Long: `xnpak reads a PakManifest and converts every declared asset into a
.pak file under the manifest's output directory.

Textures become raw RGBA8 pixels, 32-bit float WAV audio becomes raw
samples and plain text is copied unchanged.

While a command runs it locks ` + app.LockFileName + ` next to the manifest.
The file is left in place afterwards, so add it to your ignore file.`,
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./xnpak.yaml or ~/.xnpak/config.yaml)")
	flags.StringP("manifest", "m", config.DefaultManifestPath, "Manifest file")
	flags.IntP("workers", "j", 0, "Number of concurrent importers (0=auto)")
	flags.Bool("strict-types", false, "Reject unknown asset types instead of importing them as PlainText")
	flags.BoolVar(&c.noCache, "no-cache", false, "Disable the import cache")
	flags.BoolVar(&c.noProg, "no-progress", false, "Disable the progress bar")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = c.v.BindPFlag("manifest.path", flags.Lookup("manifest"))
	_ = c.v.BindPFlag("manifest.strict_types", flags.Lookup("strict-types"))
	_ = c.v.BindPFlag("build.workers", flags.Lookup("workers"))

	// Add subcommands
	for _, action := range app.AllActions() {
		rootCmd.AddCommand(c.newActionCmd(action))
	}
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

var actionHelp = map[app.Action]struct{ short, long string }{
	app.ActionBuild: {
		"Convert every asset into a fresh output directory",
		"Empties the output directory, then imports each asset and writes its .pak file. The first failing asset aborts the build.",
	},
	app.ActionRebuild: {
		"Clean, purge the import cache and build",
		"Removes the output directory and every cached conversion, then builds from scratch.",
	},
	app.ActionClean: {
		"Remove the output directory",
		"Deletes the output directory and everything in it. Cleaning an already clean project succeeds.",
	},
}

func (c *cli) newActionCmd(action app.Action) *cobra.Command {
	help := actionHelp[action]
	return &cobra.Command{
		Use:   string(action) + " [manifest]",
		Short: help.short,
		Long:  help.long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAction(cmd, action, args)
		},
	}
}

// setup loads configuration, the logger and the manifest shared by every command
func (c *cli) setup(args []string) (*config.Config, *utils.Logger, *manifest.Manifest, error) {
	cfg, err := config.LoadWithViper(c.v, c.cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  c.stderr,
		Verbose: c.verbose,
	})

	path := cfg.Manifest.Path
	if len(args) > 0 {
		path = args[0]
	}

	loader := manifest.NewLoader(manifest.WithStrictTypes(cfg.Manifest.StrictTypes))
	m, err := loader.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, m, nil
}

func (c *cli) runAction(cmd *cobra.Command, action app.Action, args []string) error {
	cfg, logger, m, err := c.setup(args)
	if err != nil {
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			logger.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose:      c.verbose,
			NoCache:      c.noCache,
			ShowProgress: !c.noProg && isTerminal(),
			StrictTypes:  cfg.Manifest.StrictTypes,
		},
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	result, err := orchestrator.Run(ctx, action, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	if result == nil {
		fmt.Fprintln(out, st.Success.Render("Cleaned "+m.ContentDir()))
		return nil
	}
	fmt.Fprintln(out, st.Success.Render(fmt.Sprintf("Built %d assets (%s) into %s in %s",
		result.Assets, formatBytes(result.Bytes), result.ContentDir, result.Duration.Round(time.Millisecond))))
	if result.CacheHits > 0 {
		fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("%d of %d assets served from the import cache", result.CacheHits, result.Assets)))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}

// formatBytes renders a byte count with a binary unit suffix
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
