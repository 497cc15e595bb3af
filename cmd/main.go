package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Akashdeep-Patra/pooled-list/internal/app"
	"github.com/Akashdeep-Patra/pooled-list/internal/common"
	"github.com/Akashdeep-Patra/pooled-list/internal/config"
	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/simulate"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/views"
	"github.com/Akashdeep-Patra/pooled-list/internal/watcher"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// The engine is single-threaded and the TUI mostly waits on terminal
	// input, so two OS threads are plenty. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(runtime.NumCPU(), 2))
	}

	// A recycled list keeps its working set small; hold the GC to it.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pls",
		Short: "A pooled, recycled list viewer for the terminal",
		Long: `pls renders long sequences of coloured, numbered items through a small
pool of recycled view elements. Items scrolled out of view are stood in
for by spacers, so only what fits on screen is ever bound.

Two tabs show the same engine in linear and grid layout. Items come from
a random generator or a TOML file (--file), which is reloaded on change.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pls %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	flags := rootCmd.PersistentFlags()
	flags.IntP("count", "n", 100, "Number of random items")
	flags.StringP("mode", "m", "linear", "Layout shown first: linear or grid")
	flags.StringP("axis", "a", "vertical", "Scroll axis: vertical or horizontal")
	flags.StringP("file", "f", "", "TOML item file to show instead of random items")
	flags.IntP("columns", "c", 4, "Grid columns")
	flags.Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	rootCmd.AddCommand(buildSimulateCmd())
	rootCmd.AddCommand(buildGenerateCmd())
	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	return rootCmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	axis, _ := config.ParseAxis(cfg.Axis)
	first, _ := config.ParseMode(cfg.Mode)
	seed := seedFrom(cmd)

	styles := ui.DefaultStyles()
	viewMap := make(map[common.TabID]common.View, len(common.AllTabs))
	for i, tab := range []struct {
		id   common.TabID
		mode recycler.Mode
	}{
		{common.TabLinear, recycler.Linear},
		{common.TabGrid, recycler.Grid},
	} {
		source, name := newSource(cfg, seed+uint64(i))
		v, err := views.NewListView(styles, views.ListOptions{
			Tab:                tab.id,
			Mode:               tab.mode,
			Axis:               axis,
			Layout:             cfg.Layout(tab.mode),
			ElementSize:        cfg.ElementSize,
			PoolCapacity:       cfg.PoolCapacity,
			SpacerPoolCapacity: cfg.SpacerPoolCapacity,
			ResetOnMutation:    cfg.ResetOnMutation,
			Source:             source,
			SourceName:         name,
			Generator:          data.NewRandomProvider(cfg.Colors, 0, seed^uint64(0xa5+i)),
			Keys:               config.DefaultKeyBindings(),
			Logger:             logger,
		})
		if err != nil {
			return err
		}
		viewMap[tab.id] = v
	}

	firstTab := common.TabLinear
	if first == recycler.Grid {
		firstTab = common.TabGrid
	}
	model := app.New(styles, app.DefaultKeyMap(), viewMap, firstTab)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Reload the item file when it changes on disk.
	if cfg.DataFile != "" && cfg.Watch {
		watchCh, stop, watchErr := watcher.Watch(cfg.DataFile, cfg.WatchDebounce)
		if watchErr != nil {
			logger.Warn("not watching data file", "path", cfg.DataFile, "err", watchErr)
		} else {
			defer stop()
			go func() {
				for ev := range watchCh {
					logger.Debug("data file changed", "path", ev.Path)
					p.Send(common.RefreshMsg{})
				}
			}()
		}
	}

	_, err = p.Run()
	return err
}

// newSource picks the item provider for cfg.
func newSource(cfg *config.Config, seed uint64) (data.Provider, string) {
	if cfg.DataFile != "" {
		return data.FileProvider{Path: cfg.DataFile}, cfg.DataFile
	}
	return data.NewRandomProvider(cfg.Colors, cfg.Count, seed), "random"
}

func seedFrom(cmd *cobra.Command) uint64 {
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return seed
}

// newLogger returns the application logger. The TUI owns the terminal, so
// logs go to cfg.LogFile or nowhere.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, _ := config.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "pls")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// buildSimulateCmd creates the `pls simulate` subcommand, a headless scroll
// sweep that prints the engine state at every step.
func buildSimulateCmd() *cobra.Command {
	var (
		jsonOutput bool
		steps      int
		width      int
		height     int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Scroll a list from start to end without a terminal",
		Long: `Initialize a list, scroll it edge to edge in equal steps and print
the window, spacer and pool state after each step.

Examples:
  pls simulate --count 1000 --steps 20
  pls simulate --mode grid --columns 3 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			level, _ := config.ParseLevel(cfg.LogLevel)
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			mode, _ := config.ParseMode(cfg.Mode)
			axis, _ := config.ParseAxis(cfg.Axis)
			source, _ := newSource(cfg, seedFrom(cmd))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			items, err := source.Items(ctx)
			if err != nil {
				return fmt.Errorf("loading items: %w", err)
			}

			frames, err := simulate.Run(ctx, simulate.Options{
				Mode:        mode,
				Axis:        axis,
				Layout:      cfg.Layout(mode),
				ElementSize: cfg.ElementSize,
				Width:       width,
				Height:      height,
				Steps:       steps,
				Items:       items,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(frames)
			}
			printFrames(os.Stdout, frames)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output frames as JSON")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of scroll steps")
	cmd.Flags().IntVar(&width, "width", 80, "Host width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "Host height in cells")

	return cmd
}

func printFrames(w io.Writer, frames []simulate.Frame) {
	fmt.Fprintf(w, "%4s %6s %6s %6s %4s %7s %11s\n", "step", "offset", "pos", "culled", "size", "spacers", "items")
	for _, f := range frames {
		fmt.Fprintf(w, "%4d %6d %6.3f %6d %4d %7d %5d..%-5d\n",
			f.Step, f.Offset, f.Position, f.Culled, f.Size, f.Spacers, f.First, f.Last)
	}
	if len(frames) == 0 {
		return
	}
	s := frames[len(frames)-1].Stats
	fmt.Fprintf(w, "\nrecomputes %d  rebuilds %d  reorientations %d  moves %d  pushes %d\n",
		s.Recomputes, s.Rebuilds, s.Reorientations, s.Moves, s.Pushes)
	fmt.Fprintf(w, "elements created %d  acquired %d  released %d\n",
		s.Pool.Created, s.Pool.Acquired, s.Pool.Released)
	fmt.Fprintf(w, "spacers  created %d  acquired %d  released %d\n",
		s.SpacerPool.Created, s.SpacerPool.Acquired, s.SpacerPool.Released)
}

// buildGenerateCmd creates the `pls generate` subcommand that writes a random
// item file usable with --file.
func buildGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <path>",
		Short: "Write a random TOML item file",
		Long: `Write --count random items to a TOML file that --file can show.

Examples:
  pls generate items.toml --count 500
  pls --file items.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			items, err := data.NewRandomProvider(cfg.Colors, cfg.Count, seedFrom(cmd)).Items(context.Background())
			if err != nil {
				return err
			}
			if err := data.WriteFile(args[0], items); err != nil {
				return err
			}
			fmt.Printf("Wrote %d items to %s\n", len(items), args[0])
			return nil
		},
	}
}

// buildVersionCmd creates the `pls version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("pls %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `pls completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pls.

Examples:
  pls completion bash > /etc/bash_completion.d/pls
  pls completion zsh > "${fpath[1]}/_pls"
  pls completion fish > ~/.config/fish/completions/pls.fish
  pls completion powershell > pls.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
