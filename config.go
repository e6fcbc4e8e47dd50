package xdgmenu

import (
	"errors"
	"path/filepath"
)

const (
	DefaultFallbackIcon = "application-x-executable"
	DefaultIconTheme    = "Adwaita"
	DefaultIconSize     = 24
	DefaultTerminal     = "xterm"
	DefaultDataDirs     = "/usr/share:/usr/local/share"

	// FallbackTheme is searched after the configured theme in every search root.
	FallbackTheme = "hicolor"

	// PixmapDir is the last, size agnostic icon directory.
	PixmapDir = "/usr/share/pixmaps"
)

// ErrNoSearchRoots is returned when the environment does not define
// any location to search for applications and icons.
var ErrNoSearchRoots = errors.New("no search roots: HOME, XDG_DATA_HOME and XDG_DATA_DIRS are all unset")

// Config holds everything the menu pipeline needs from the environment
// and the command line. It is not modified after construction.
type Config struct {
	// Base directories in priority order. Each contributes
	// applications/ and icons/<theme>/ subtrees.
	SearchRoots []string

	// Value of XDG_CURRENT_DESKTOP, matched by substring.
	CurrentDesktop string

	// Directories searched for relative TryExec values.
	ExecPath []string

	FallbackIcon string
	IconTheme    string
	IconSize     int
	Terminal     string

	// Disables NotShowIn/OnlyShowIn filtering.
	AllDesktops bool

	// Show "Name (GenericName)" when GenericName is set.
	GenericName bool

	// Emit IMG: fields. Without icons no lookups are done at all.
	Icons bool

	// Order categories and items by display name instead of
	// discovery order.
	Sort bool
}

// DefaultConfig returns a Config with the command line defaults and no
// environment derived fields.
func DefaultConfig() Config {
	return Config{
		FallbackIcon: DefaultFallbackIcon,
		IconTheme:    DefaultIconTheme,
		IconSize:     DefaultIconSize,
		Terminal:     DefaultTerminal,
		GenericName:  true,
		Icons:        true,
	}
}

// ConfigFromEnv fills the environment derived fields of DefaultConfig
// using lookup, which has the signature of os.LookupEnv.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	home, hasHome := lookup("HOME")
	dataHome, hasDataHome := lookup("XDG_DATA_HOME")
	dataDirs, hasDataDirs := lookup("XDG_DATA_DIRS")

	if (!hasHome || home == "") && (!hasDataHome || dataHome == "") && !hasDataDirs {
		return Config{}, ErrNoSearchRoots
	}

	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataDirs == "" {
		dataDirs = DefaultDataDirs
	}

	var roots []string
	if dataHome != "" {
		roots = append(roots, dataHome)
	}
	roots = appendUnique(roots, splitList(dataDirs, ":")...)
	if len(roots) == 0 {
		return Config{}, ErrNoSearchRoots
	}
	cfg.SearchRoots = roots

	cfg.CurrentDesktop, _ = lookup("XDG_CURRENT_DESKTOP")
	if path, ok := lookup("PATH"); ok {
		cfg.ExecPath = splitList(path, ":")
	}

	return cfg, nil
}
