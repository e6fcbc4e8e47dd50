package xdgmenu

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// IconLookup resolves icon names to files for one theme and size.
type IconLookup struct {
	fs         afero.Fs
	roots      []string
	theme      string
	size       int
	extensions []string
	pixmapDir  string
	dirCache   map[dirCacheKey][]string
	mu         sync.RWMutex
}

// NewIconLookup creates a lookup over cfg's search roots, theme and size.
func NewIconLookup(fs afero.Fs, cfg Config) *IconLookup {
	return &IconLookup{
		fs:         fs,
		roots:      cfg.SearchRoots,
		theme:      cfg.IconTheme,
		size:       cfg.IconSize,
		extensions: []string{"png", "svg", "xpm"},
		pixmapDir:  PixmapDir,
		dirCache:   make(map[dirCacheKey][]string),
	}
}

// Theme returns the configured theme.
func (il *IconLookup) Theme() string {
	return il.theme
}

// ThemeDirectories returns, in search order, every directory of theme and
// of hicolor across all search roots whose size matches, followed by the
// pixmaps directory.
func (il *IconLookup) ThemeDirectories(theme string, size int) []string {
	return il.themeDirectories(theme, size)
}

// Directories is ThemeDirectories for the configured theme and size.
func (il *IconLookup) Directories() []string {
	return il.themeDirectories(il.theme, il.size)
}

// Find looks iconName up without any fallback.
func (il *IconLookup) Find(iconName string) (string, bool) {
	if iconName == "" {
		return "", false
	}

	if strings.HasPrefix(iconName, "/") {
		if il.fileExists(iconName) {
			return iconName, true
		}
		return "", false
	}

	for _, dir := range il.Directories() {
		for _, extension := range il.extensions {
			iconPath := filepath.Join(dir, iconName+"."+extension)
			if il.fileExists(iconPath) {
				return iconPath, true
			}
		}
	}

	return "", false
}

// Resolve looks iconName up, then fallback. It gives up after the
// fallback, and immediately when iconName is the fallback itself.
func (il *IconLookup) Resolve(iconName, fallback string) (string, bool) {
	if iconPath, ok := il.Find(iconName); ok {
		return iconPath, true
	}

	if iconName == fallback {
		log.Debug().Str("theme", il.Theme()).Str("icon", iconName).Msg("icon not found")
		return "", false
	}

	iconPath, ok := il.Find(fallback)
	if !ok {
		log.Debug().Str("theme", il.Theme()).Str("icon", iconName).Str("fallback", fallback).Msg("icon and fallback not found")
		return "", false
	}
	return iconPath, true
}

func (il *IconLookup) fileExists(iconPath string) bool {
	stat, err := il.fs.Stat(iconPath)
	return err == nil && !stat.IsDir()
}
