package xdgmenu

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Filter decides which desktop entries belong in the menu.
type Filter struct {
	fs             afero.Fs
	execPath       []string
	currentDesktop string
	allDesktops    bool
}

func NewFilter(fs afero.Fs, cfg Config) *Filter {
	return &Filter{
		fs:             fs,
		execPath:       cfg.ExecPath,
		currentDesktop: cfg.CurrentDesktop,
		allDesktops:    cfg.AllDesktops,
	}
}

// ShouldShow applies, in order: the Exec/NoDisplay/Hidden/Type checks,
// TryExec (final when present), and NotShowIn/OnlyShowIn unless all
// desktops are shown.
func (f *Filter) ShouldShow(entry Section) bool {
	if _, ok := entry.Get("Exec"); !ok {
		return false
	}
	if entry.Bool("NoDisplay") || entry.Bool("Hidden") || entry["Type"] != "Application" {
		return false
	}

	if tryExec, ok := entry.Get("TryExec"); ok && tryExec != "" {
		return f.executableExists(tryExec)
	}

	if f.allDesktops {
		return true
	}

	if notShowIn, ok := entry.Get("NotShowIn"); ok {
		for _, desktop := range splitList(notShowIn, ";") {
			if f.inCurrentDesktop(desktop) {
				return false
			}
		}
	}

	if onlyShowIn, ok := entry.Get("OnlyShowIn"); ok {
		for _, desktop := range splitList(onlyShowIn, ";") {
			if f.inCurrentDesktop(desktop) {
				return true
			}
		}
		return false
	}

	return true
}

// inCurrentDesktop matches by substring, so "KDE" is found in "LXQKDE".
// Kept for compatibility with existing menus.
func (f *Filter) inCurrentDesktop(desktop string) bool {
	return strings.Contains(f.currentDesktop, desktop)
}

func (f *Filter) executableExists(name string) bool {
	if filepath.IsAbs(name) {
		_, err := f.fs.Stat(name)
		return err == nil
	}

	for _, dir := range f.execPath {
		stat, err := f.fs.Stat(filepath.Join(dir, name))
		if err == nil && stat.Mode().IsRegular() {
			return true
		}
	}
	return false
}
