// Package settings loads optional defaults for the command line from a
// TOML file in the XDG config directories.
package settings

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// File is the config file name relative to the XDG config directories.
const File = "xdg-xmenu/config.toml"

// GTKSettingsFile holds the GTK 3 icon theme preference.
const GTKSettingsFile = "gtk-3.0/settings.ini"

// Settings mirrors the command line flags. Unset fields keep the flag
// defaults.
type Settings struct {
	FallbackIcon *string `toml:"fallback_icon"`
	IconTheme    *string `toml:"icon_theme"`
	IconSize     *int    `toml:"icon_size"`
	Terminal     *string `toml:"terminal"`
	AllDesktops  *bool   `toml:"all_desktops"`
	GenericName  *bool   `toml:"generic_name"`
	Icons        *bool   `toml:"icons"`
	Sort         *bool   `toml:"sort"`
	Renderer     *string `toml:"renderer"`
	SVGDir       *string `toml:"svg_dir"`
	GTKTheme     *bool   `toml:"gtk_theme"`
}

// Find returns the path of the settings file, or "" when there is none.
func Find() string {
	path, err := xdg.SearchConfigFile(File)
	if err != nil {
		return ""
	}
	return path
}

// FindGTKSettings returns the path of gtk-3.0/settings.ini, or "".
func FindGTKSettings() string {
	path, err := xdg.SearchConfigFile(GTKSettingsFile)
	if err != nil {
		return ""
	}
	return path
}

// Load reads settings from path. A missing file yields empty settings.
func Load(afs afero.Fs, path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}

	data, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	} else if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings %s: %w", path, err)
	}
	return s, nil
}
