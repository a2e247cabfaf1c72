// Package cmd wires the jsonexplorer command line: the interactive viewer on
// the root command plus a few non-interactive helpers.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/jsonexplorer/internal/config"
	"github.com/oakwood-commons/jsonexplorer/internal/formatter"
	"github.com/oakwood-commons/jsonexplorer/internal/navigator"
	"github.com/oakwood-commons/jsonexplorer/internal/session"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui"
	"github.com/oakwood-commons/jsonexplorer/pkg/logger"
	"github.com/oakwood-commons/jsonexplorer/pkg/settings"
)

// errNoTerminal is returned when the viewer is started without a TTY.
var errNoTerminal = errors.New("interactive mode needs a terminal; use --snapshot or the print command")

// cliError carries the message shown to the user while keeping the
// underlying error for errors.Is/As.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

// rootOptions holds flag values and per-run state shared by the commands.
type rootOptions struct {
	configFile string
	debug      bool
	logFile    string
	noColor    bool

	themeName      string
	watch          bool
	expandDepth    int
	noRaw          bool
	renderSnapshot bool
	width          int
	height         int
	startKeys      []string

	printNoValues bool
	printDepth    int
	printWidth    int
	printPath     string

	configOutput string

	cfg       config.Config
	ctx       context.Context
	closeSink func() error

	// isTerminal is swapped in tests.
	isTerminal func() bool
}

func newRootOptions() *rootOptions {
	return &rootOptions{
		ctx:        context.Background(),
		closeSink:  func() error { return nil },
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newRootOptions())
}

func newRootCmd(o *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Browse a JSON document as an expandable tree",
		Long: "jsonexplorer opens a JSON file in a terminal viewer: the document tree on the left,\n" +
			"a type-specific view of the selected value on the right and the raw text below it.",
		Example: "\n  jsonexplorer testdata/sample.json\n" +
			"  jsonexplorer --watch --theme warm service.json\n" +
			"  jsonexplorer --snapshot --width 100 --height 30 --press 'jj<Tab>' service.json\n" +
			"  jsonexplorer print --depth 2 service.json\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			interactive := cmd.Name() == settings.CliBinaryName && !o.renderSnapshot
			return o.setup(cmd, args, interactive)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runViewer(cmd)
		},
	}
	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config-file", "", "path to a YAML or TOML config file (themes, settings)")
	pf.BoolVar(&o.debug, "debug", false, "log at debug level")
	pf.StringVar(&o.logFile, "log-file", "", "write logs to this file (default from config; discarded while the viewer runs)")
	pf.BoolVar(&o.noColor, "no-color", false, "disable color output")

	f := rootCmd.Flags()
	f.StringVar(&o.themeName, "theme", "", "theme name (default from config; see 'jsonexplorer themes')")
	f.BoolVar(&o.watch, "watch", false, "reload the file when it changes on disk")
	f.IntVar(&o.expandDepth, "expand-depth", 1, "levels expanded after a load (default from config)")
	f.BoolVar(&o.noRaw, "no-raw", false, "start with the raw document pane hidden")
	f.BoolVar(&o.renderSnapshot, "snapshot", false, "render a single frame and exit (dev/test); honors --width/--height")
	f.IntVar(&o.width, "width", 0, "window width in columns (0 = detect)")
	f.IntVar(&o.height, "height", 0, "window height in rows (0 = detect)")
	f.StringArrayVar(&o.startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <Tab>, <CR>, <Esc>, <C-u>); literal text types normally")

	rootCmd.AddCommand(newVersionCmd(), newPrintCmd(o), newConfigCmd(o), newThemesCmd(o))
	return rootCmd
}

// setup loads config, starts the logger and stores run settings in o.ctx.
func (o *rootOptions) setup(cmd *cobra.Command, args []string, interactive bool) error {
	cfgPath := resolveConfigPath(o.configFile)
	cfg, err := loadMergedConfig(cfgPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	run := settings.NewRun()
	level, err := config.ParseLogLevel(cfg.App.LogLevel)
	if err != nil {
		return err
	}
	if o.debug {
		level = -1
	}
	run.MinLogLevel = level
	run.LogFile = cfg.App.LogFile
	if o.logFile != "" {
		run.LogFile = o.logFile
	}
	run.NoColor = o.noColor
	if len(args) > 0 {
		run.Input = settings.InputSettings{Path: args[0], Watch: o.watch || cfg.Watch()}
	}

	sink, closer, err := openLogSink(run.LogFile, interactive)
	if err != nil {
		return err
	}
	o.closeSink = closer

	lgr := logger.Get(run.MinLogLevel, sink)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	o.ctx = settings.IntoContext(logger.WithLogger(base, lgr), run)
	lgr.V(1).Info("config loaded", logger.PathKey, cfgPath, "theme", cfg.UI.Theme)
	return nil
}

// openLogSink picks where logs go. The viewer owns the terminal, so without
// a log file its logs are dropped; other commands log to stderr.
func openLogSink(path string, interactive bool) (io.Writer, func() error, error) {
	if path != "" || interactive {
		return logger.OpenSink(path)
	}
	return os.Stderr, func() error { return nil }, nil
}

func (o *rootOptions) runViewer(cmd *cobra.Command) error {
	run, _ := settings.FromContext(o.ctx)
	if run == nil {
		run = settings.NewRun()
	}

	th, err := selectTheme(o.cfg, o.themeName, o.noColor)
	if err != nil {
		return err
	}
	depth := o.cfg.ExpandDepth()
	if cmd.Flags().Changed("expand-depth") {
		depth = o.expandDepth
	}
	if depth < 0 {
		return fmt.Errorf("--expand-depth must not be negative")
	}

	opts := ui.Options{
		Path:        run.Input.Path,
		Session:     session.New(session.WithMaxBytes(o.cfg.MaxFileBytes())),
		Theme:       th,
		ExpandDepth: depth,
		ShowRaw:     o.cfg.ShowRaw() && !o.noRaw,
		Watch:       run.Input.Watch,
		Width:       o.width,
		Height:      o.height,
		StartKeys:   o.startKeys,
	}

	if o.renderSnapshot {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSnapshot(o.ctx, opts))
		return err
	}
	if !o.isTerminal() {
		return errNoTerminal
	}
	return ui.Run(o.ctx, opts)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print jsonexplorer version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return err
		},
	}
}

func newPrintCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "print <file|->",
		Short: "Print the document tree without starting the viewer",
		Long:  "Loads a JSON document like the viewer does and prints its tree. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runPrint(cmd, args[0])
		},
	}
	c.Flags().BoolVar(&o.printNoValues, "no-values", false, "show structure only (hide leaf values)")
	c.Flags().IntVar(&o.printDepth, "depth", 0, "limit tree depth (0 = unlimited)")
	c.Flags().IntVar(&o.printWidth, "width", 0, "truncate lines to this many columns (0 = no limit)")
	c.Flags().StringVar(&o.printPath, "path", "", `print only the value at this path, e.g. '$.items[0]' or 'a["odd key"]'`)
	return c
}

func (o *rootOptions) runPrint(cmd *cobra.Command, path string) error {
	if o.printDepth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}
	sess := session.New(session.WithMaxBytes(o.cfg.MaxFileBytes()))

	var (
		snap *session.Snapshot
		err  error
	)
	if path == "-" {
		data, rerr := io.ReadAll(cmd.InOrStdin())
		if rerr != nil {
			return fmt.Errorf("read stdin: %w", rerr)
		}
		snap, err = sess.LoadBytes(o.ctx, "<stdin>", data)
	} else {
		snap, err = sess.Load(o.ctx, path)
	}
	if err != nil {
		return &cliError{msg: session.UserMessage(err), err: err}
	}

	root := snap.Root
	if o.printPath != "" {
		steps, err := navigator.ParsePath(o.printPath)
		if err != nil {
			return err
		}
		v, err := navigator.Resolve(snap.Document.Root(), steps)
		if err != nil {
			return err
		}
		root = tree.ProjectValue(v, navigator.Format(steps)+" : ")
	}

	out := formatter.FormatTree(root, formatter.TreeOptions{
		NoValues: o.printNoValues,
		MaxDepth: o.printDepth,
		MaxWidth: o.printWidth,
	})
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// newConfigCmd groups configuration-related subcommands similar to gh-style CLIs.
func newConfigCmd(o *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jsonexplorer configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	configCmd.PersistentFlags().StringVarP(&o.configOutput, "output", "o", "yaml", "output format: yaml|toml|json")

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(o.cfg, o.configOutput)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(data); err != nil {
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				_, err = fmt.Fprintln(w)
			}
			return err
		},
	}
	configCmd.AddCommand(getCmd, newThemesCmd(o))
	return configCmd
}

func newThemesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeThemes(cmd.OutOrStdout(), o.cfg)
		},
	}
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	goVersion := runtime.Version()
	if info, ok := rdebug.ReadBuildInfo(); ok && info.GoVersion != "" {
		goVersion = info.GoVersion
	}
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, goVersion)
}

// Execute runs the CLI and flushes the logger.
func Execute() error {
	o := newRootOptions()
	err := newRootCmd(o).Execute()
	logger.Sync()
	if cerr := o.closeSink(); cerr != nil && err == nil {
		err = fmt.Errorf("close log file: %w", cerr)
	}
	return err
}
