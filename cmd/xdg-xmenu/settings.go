package main

import (
	"github.com/codelif/xdgmenu/settings"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// applySettings fills every flag not given on the command line from the
// settings file.
func applySettings(cmd *cobra.Command, afs afero.Fs, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = settings.Find()
	}

	s, err := settings.Load(afs, path)
	if err != nil {
		return err
	}
	if path != "" {
		log.Debug().Str("path", path).Msg("loaded settings")
	}

	changed := cmd.Flags().Changed
	setString(&opts.fallbackIcon, s.FallbackIcon, changed("fallback-icon"))
	setString(&opts.iconTheme, s.IconTheme, changed("icon-theme"))
	setString(&opts.terminal, s.Terminal, changed("terminal"))
	setString(&opts.renderer, s.Renderer, changed("renderer"))
	setString(&opts.svgDir, s.SVGDir, changed("svg-dir"))
	if s.IconSize != nil && !changed("icon-size") {
		opts.iconSize = *s.IconSize
	}
	setBool(&opts.allDesktops, s.AllDesktops, changed("all-desktops"))
	setBool(&opts.sort, s.Sort, changed("sort"))
	setBool(&opts.gtkTheme, s.GTKTheme, changed("gtk-theme"))
	if s.GenericName != nil && !changed("no-generic-name") {
		opts.noGenericName = !*s.GenericName
	}
	if s.Icons != nil && !changed("no-icons") {
		opts.noIcons = !*s.Icons
	}

	return nil
}

func setString(dst *string, value *string, changed bool) {
	if value != nil && !changed {
		*dst = *value
	}
}

func setBool(dst *bool, value *bool, changed bool) {
	if value != nil && !changed {
		*dst = *value
	}
}
