package xdgmenu

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type dirCacheKey struct {
	theme string
	size  int
}

// themeDirectories memoizes computeThemeDirectories for the lifetime of
// the IconLookup. Nothing is kept across runs.
func (il *IconLookup) themeDirectories(theme string, size int) []string {
	key := dirCacheKey{theme: theme, size: size}

	il.mu.RLock()
	dirs, ok := il.dirCache[key]
	il.mu.RUnlock()
	if ok {
		return dirs
	}

	dirs = il.computeThemeDirectories(theme, size)

	il.mu.Lock()
	il.dirCache[key] = dirs
	il.mu.Unlock()

	return dirs
}

func (il *IconLookup) computeThemeDirectories(theme string, size int) []string {
	var dirs []string

	for _, root := range il.roots {
		for _, name := range []string{theme, FallbackTheme} {
			themeDir := filepath.Join(root, "icons", name)
			if _, err := il.fs.Stat(filepath.Join(themeDir, "index.theme")); err != nil {
				continue
			}

			themeInfo, err := readThemeIndex(il.fs, themeDir)
			if err != nil {
				log.Debug().Err(err).Str("theme", themeDir).Msg("ignoring icon theme")
				continue
			}

			for _, subdir := range themeInfo.Directories {
				if subdir.MatchesSize(size) {
					dirs = append(dirs, filepath.Join(themeDir, subdir.Name))
				}
			}
		}
	}

	return append(dirs, il.pixmapDir)
}
