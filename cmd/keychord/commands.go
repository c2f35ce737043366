package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keychord/internal/app"
	"github.com/dshills/keychord/internal/command"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/logging"
	"github.com/dshills/keychord/internal/terminal"
)

// errNotTerminal is returned by run when stdin is not a terminal.
var errNotTerminal = errors.New("keychord run needs an interactive terminal")

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "keychord",
		Short: "Keyboard shortcut dispatcher",
		Long: `keychord normalizes key presses, accumulates chords and dispatches
them to commands through a state-aware keymap.

Examples:
  keychord                               # Start the interactive dispatcher
  keychord normalize "shift+mod+f"       # Print the canonical sequence
  keychord check keys.toml keys.json     # Validate keymap files
  keychord check --list keys.toml        # Show what a keymap binds`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts, false)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(opts),
		newNormalizeCmd(),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive dispatcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts, noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable keymap hot reload")
	return cmd
}

func runInteractive(ctx context.Context, opts *rootOptions, noWatch bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := app.New(app.Options{
		ConfigPath: opts.configPath,
		LogLevel:   opts.logLevel,
		NoWatch:    noWatch,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Shutdown()

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, screen); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newNormalizeCmd() *cobra.Command {
	var platform string
	cmd := &cobra.Command{
		Use:   "normalize <shortcut>...",
		Short: "Print the canonical form of shortcuts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := key.DetectPlatform()
			if platform != "" {
				p = key.Platform(platform)
			}
			parser := key.NewParser(p, nil)

			var errs []error
			for _, text := range args {
				seq, err := parser.ParseSequence(text)
				if err != nil {
					errs = append(errs, fmt.Errorf("%q: %w", text, err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), seq.String())
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", `Platform for "mod" (darwin, linux, windows, ...)`)
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		list     bool
		platform string
	)
	cmd := &cobra.Command{
		Use:   "check <keymap-file>...",
		Short: "Validate keymap files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := opts.logLevel
			if level == "" {
				level = "warn"
			}
			logger, err := logging.New(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}

			p := key.DetectPlatform()
			if platform != "" {
				p = key.Platform(platform)
			}

			var errs []error
			for _, path := range args {
				km := keymap.New(key.NewParser(p, logger), command.NewRegistry(logger), logger)
				if err := checkFile(cmd.OutOrStdout(), km, path, list); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List the bindings of each file")
	cmd.Flags().StringVar(&platform, "platform", "", `Platform for "mod" (darwin, linux, windows, ...)`)
	return cmd
}

func checkFile(w io.Writer, km *keymap.Keymap, path string, list bool) error {
	states, err := keymap.LoadFile(path)
	if err != nil {
		return err
	}
	regErr := km.RegisterKeys(states)

	total := 0
	for _, state := range km.States() {
		total += len(km.Entries(state))
	}
	fmt.Fprintf(w, "%s: %d states, %d bindings\n", path, len(km.States()), total)

	if list {
		for _, state := range km.States() {
			fmt.Fprintf(w, "[%s]\n", state)
			for _, e := range km.Entries(state) {
				fmt.Fprintf(w, "  %-24s %s\n", e.Sequence, describe(e.Action))
			}
		}
	}

	if regErr != nil {
		return fmt.Errorf("%s: %w", path, regErr)
	}
	return nil
}

func describe(action keymap.Action) string {
	if cmd, ok := action.(keymap.Command); ok {
		return string(cmd)
	}
	return "<handler>"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "keychord %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
