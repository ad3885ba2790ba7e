package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/roadmap-content/internal/app"
	"github.com/agentic-research/roadmap-content/internal/config"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	configPath  string
	roadmapsDir string
	model       string
	concurrency int
	strict      bool
	verbosity   int
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to an HCL config file (default "+config.DefaultFile+" if present)")
	flags.StringVarP(&roadmapsDir, "roadmaps-dir", "d", config.DefaultRoadmapsDir, "Directory holding one sub-directory per roadmap")
	flags.StringVarP(&model, "model", "m", "", "Chat completion model (default from config, then gpt-4)")
	flags.IntVar(&concurrency, "concurrency", 0, "Maximum topics processed at once (0 = all at once)")
	flags.BoolVar(&strict, "strict", false, "Fail when two content files map to the same topic")
	flags.IntVarP(&verbosity, "verbosity", "v", 0, "Log verbosity")
}

var rootCmd = &cobra.Command{
	Use:   "roadmap-content [roadmap-id]",
	Short: "Backfill empty roadmap topic content files",
	Long: `Backfill empty roadmap topic content files.

Every topic drawn in the roadmap definition is matched to its Markdown file
under <roadmaps-dir>/<roadmap-id>/content. Files holding only a heading are
filled: with text from the chat completion API when ` + config.APIKeyEnv + ` is
set, with a "# <title>" placeholder otherwise. Files with content are never
touched.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		return runBackfill(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a, id)
	},
}

func runBackfill(ctx context.Context, stdout, stderr io.Writer, a *app.App, id string) error {
	if id == "" {
		// Fail before touching the tree.
		_, err := a.Workspace.Resolve(id)
		return err
	}
	if a.PlaceholderMode() {
		fmt.Fprintln(stderr, "----------------------------------------")
		fmt.Fprintf(stderr, "%s not found. Skipping openai api calls...\n", config.APIKeyEnv)
		fmt.Fprintln(stderr, "----------------------------------------")
	}

	report, err := a.Backfill(ctx, id)
	if report != nil {
		a.Log.Info("backfill finished", "summary", report.Summary())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Done")
	return nil
}

// newApp resolves configuration from the config file and flags.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("roadmaps-dir") {
		cfg.RoadmapsDir = roadmapsDir
	}
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("strict") {
		cfg.StrictCollisions = strict
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.RoadmapsDir, err = filepath.Abs(cfg.RoadmapsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve roadmaps dir: %w", err)
	}
	return app.New(osfs.New("/"), cfg, newLogger(cmd.ErrOrStderr(), verbosity)), nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
