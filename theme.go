package xdgmenu

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ErrMissingSize marks a theme subdirectory whose section has no usable Size.
var ErrMissingSize = errors.New("missing Size")

var iniOptions = ini.LoadOptions{
	KeyValueDelimiters:      "=",
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	AllowBooleanKeys:        true,
	SkipUnrecognizableLines: true,
}

func loadINI(fs afero.Fs, path string) (*ini.File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return f, nil
}

// readThemeIndex parses themeDir/index.theme. Subdirectories that cannot
// be described are skipped; only an unreadable index is an error.
func readThemeIndex(fs afero.Fs, themeDir string) (*ThemeInfo, error) {
	indexPath := filepath.Join(themeDir, "index.theme")
	index, err := loadINI(fs, indexPath)
	if err != nil {
		return nil, err
	}

	iconThemeSection, err := index.GetSection("Icon Theme")
	if err != nil {
		return nil, fmt.Errorf("error reading required section: %w", err)
	}

	themeInfo := &ThemeInfo{
		Name: filepath.Base(themeDir),
		Dir:  themeDir,
	}

	directories := splitList(iconThemeSection.Key("Directories").String(), ",")
	for _, dir := range directories {
		info, err := readSubDir(index, dir)
		if err != nil {
			log.Debug().Err(err).Str("index", indexPath).Str("subdir", dir).Msg("skipping theme subdirectory")
			continue
		}
		themeInfo.Directories = append(themeInfo.Directories, info)
	}

	return themeInfo, nil
}

func readSubDir(index *ini.File, dir string) (SubDirIconInfo, error) {
	dirSection, err := index.GetSection(dir)
	if err != nil {
		return SubDirIconInfo{}, fmt.Errorf("error reading required section: %w", err)
	}

	sizeKey, err := dirSection.GetKey("Size")
	if err != nil {
		return SubDirIconInfo{}, ErrMissingSize
	}
	size, err := sizeKey.Int()
	if err != nil {
		return SubDirIconInfo{}, fmt.Errorf("%w: %v", ErrMissingSize, err)
	}

	info := SubDirIconInfo{
		Name:      dir,
		Size:      size,
		Scale:     dirSection.Key("Scale").MustInt(1),
		Threshold: dirSection.Key("Threshold").MustInt(2),
		MaxSize:   dirSection.Key("MaxSize").MustInt(size),
		MinSize:   dirSection.Key("MinSize").MustInt(size),
	}

	typeName := dirSection.Key("Type").MustString("Threshold")
	dirType, ok := parseDirType(typeName)
	if !ok {
		return SubDirIconInfo{}, fmt.Errorf("unknown Type %q", typeName)
	}
	info.Type = dirType

	return info, nil
}

// GTKTheme returns gtk-icon-theme-name from a gtk-3.0/settings.ini file.
func GTKTheme(fs afero.Fs, settingsPath string) (string, error) {
	settings, err := loadINI(fs, settingsPath)
	if err != nil {
		return "", err
	}

	section, err := settings.GetSection("Settings")
	if err != nil {
		return "", fmt.Errorf("error reading required section: %w", err)
	}
	key, err := section.GetKey("gtk-icon-theme-name")
	if err != nil {
		return "", fmt.Errorf("error reading required key: %w", err)
	}

	return key.String(), nil
}
