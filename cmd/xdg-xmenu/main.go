package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/codelif/xdgmenu"
	"github.com/codelif/xdgmenu/launcher"
	"github.com/codelif/xdgmenu/renderer"
	"github.com/codelif/xdgmenu/settings"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	fallbackIcon  string
	iconTheme     string
	iconSize      int
	terminal      string
	allDesktops   bool
	dryRun        bool
	noGenericName bool
	noIcons       bool
	sort          bool
	run           bool
	renderer      string
	svgDir        string
	gtkTheme      bool
	debug         bool
	configPath    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "xdg-xmenu [flags] [-- renderer args]",
		Short: "Generate an XDG application menu for xmenu",
		Long: "Generate an application menu from XDG desktop entries.\n\n" +
			"The menu is written to stdout unless --run is given, in which case it is\n" +
			"piped to the renderer and the selected command is started.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			// only arguments after "--" are accepted, they go to the renderer
			if dash := cmd.ArgsLenAtDash(); dash != 0 && len(args) > 0 {
				return fmt.Errorf("unexpected arguments before --: %v", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.debug)

			afs := afero.NewOsFs()
			if err := applySettings(cmd, afs, opts); err != nil {
				return err
			}

			return run(afs, opts, args, cmd.OutOrStdout())
		},
	}

	bindFlags(cmd.Flags(), opts)

	return cmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.fallbackIcon, "fallback-icon", "b", xdgmenu.DefaultFallbackIcon, "Fallback icon for apps without icons")
	flags.StringVarP(&opts.iconTheme, "icon-theme", "i", xdgmenu.DefaultIconTheme, "Icon theme for app icons")
	flags.IntVarP(&opts.iconSize, "icon-size", "s", xdgmenu.DefaultIconSize, "Icon size for app icons")
	flags.BoolVarP(&opts.allDesktops, "all-desktops", "e", false, "Show apps regardless of NotShowIn/OnlyShowIn")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Do not run the selected app, print its command")
	flags.StringVarP(&opts.terminal, "terminal", "t", xdgmenu.DefaultTerminal, "Terminal emulator for terminal apps")
	flags.BoolVarP(&opts.noGenericName, "no-generic-name", "G", false, "Do not show the generic name of apps")
	flags.BoolVarP(&opts.noIcons, "no-icons", "I", false, "Do not show icons")
	flags.BoolVar(&opts.sort, "sort", false, "Sort categories and apps by name")
	flags.BoolVarP(&opts.run, "run", "r", false, "Pipe the menu into the renderer and start the selection")
	flags.StringVarP(&opts.renderer, "renderer", "x", launcher.DefaultRenderer, "Menu renderer command used with --run")
	flags.StringVar(&opts.svgDir, "svg-dir", "", "Rasterize SVG icons to PNG files in this directory")
	flags.BoolVarP(&opts.gtkTheme, "gtk-theme", "g", false, "Use the icon theme from gtk-3.0/settings.ini when set")
	flags.BoolVarP(&opts.debug, "debug", "D", false, "Log debug messages to stderr")
	flags.StringVar(&opts.configPath, "config", "", "Settings file (default: $XDG_CONFIG_HOME/"+settings.File+")")
}

func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
}

func run(afs afero.Fs, opts *options, rendererArgs []string, stdout io.Writer) error {
	cfg, err := xdgmenu.ConfigFromEnv(os.LookupEnv)
	if err != nil {
		return err
	}
	applyOptions(&cfg, opts)

	if opts.gtkTheme {
		if path := settings.FindGTKSettings(); path != "" {
			theme, err := xdgmenu.GTKTheme(afs, path)
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("no gtk icon theme")
			} else if theme != "" {
				cfg.IconTheme = theme
			}
		}
	}

	var converter xdgmenu.IconConverter
	if opts.svgDir != "" {
		converter = renderer.NewRasterizer(afs, opts.svgDir, cfg.IconSize)
	}

	log.Debug().
		Strs("roots", cfg.SearchRoots).
		Str("theme", cfg.IconTheme).
		Int("size", cfg.IconSize).
		Msg("building menu")

	if !opts.run {
		menu, err := xdgmenu.Generate(afs, cfg, converter, stdout)
		logSkipped(menu)
		return err
	}

	var buf bytes.Buffer
	menu, err := xdgmenu.Generate(afs, cfg, converter, &buf)
	logSkipped(menu)
	if err != nil {
		return err
	}

	l, err := launcher.New(&launcher.RealCommandExecutor{}, opts.renderer, rendererArgs, opts.dryRun, stdout)
	if err != nil {
		return err
	}
	return l.Run(context.Background(), buf.Bytes())
}

func applyOptions(cfg *xdgmenu.Config, opts *options) {
	cfg.FallbackIcon = opts.fallbackIcon
	cfg.IconTheme = opts.iconTheme
	cfg.IconSize = opts.iconSize
	cfg.Terminal = opts.terminal
	cfg.AllDesktops = opts.allDesktops
	cfg.GenericName = !opts.noGenericName
	cfg.Icons = !opts.noIcons
	cfg.Sort = opts.sort
}

func logSkipped(menu *xdgmenu.Menu) {
	if menu != nil && menu.Skipped != nil {
		log.Warn().Err(menu.Skipped).Msg("some desktop entries were skipped")
	}
}
