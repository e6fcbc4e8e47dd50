package xdgmenu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DesktopEntryExt is the extension of application descriptors.
const DesktopEntryExt = ".desktop"

// DesktopFile is a discovered descriptor.
type DesktopFile struct {
	// Path relative to applications/ with separators replaced by '-'.
	ID   string
	Path string
}

// Category is one rendered group of the menu.
type Category struct {
	Name     string
	IconPath string
	Items    []MenuItem
}

// Menu is the assembled application menu.
type Menu struct {
	Categories []*Category

	// Descriptors and directories skipped while building. Never fatal.
	Skipped error
}

// Builder assembles menus from the search roots of a Config.
type Builder struct {
	fs          afero.Fs
	cfg         Config
	filter      *Filter
	transformer *Transformer
}

// NewBuilder wires the filter and transformer for cfg. converter may be nil.
func NewBuilder(fs afero.Fs, cfg Config, converter IconConverter) *Builder {
	var icons *IconLookup
	if cfg.Icons {
		icons = NewIconLookup(fs, cfg)
	}
	return &Builder{
		fs:          fs,
		cfg:         cfg,
		filter:      NewFilter(fs, cfg),
		transformer: NewTransformer(icons, converter, cfg),
	}
}

// Discover lists the descriptors below every root's applications/
// directory. When two files share an ID, the one found first wins.
func Discover(fs afero.Fs, roots []string) ([]DesktopFile, error) {
	var (
		files []DesktopFile
		errs  = new(multierror.Error)
		seen  = make(map[string]bool)
	)

	for _, root := range roots {
		appDir := resolveDir(fs, filepath.Join(root, "applications"))

		err := afero.Walk(fs, appDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if path == appDir && os.IsNotExist(err) {
					return nil
				}
				errs = multierror.Append(errs, fmt.Errorf("walk %s: %w", path, err))
				return nil
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), DesktopEntryExt) {
				return nil
			}

			rel, err := filepath.Rel(appDir, path)
			if err != nil {
				errs = multierror.Append(errs, err)
				return nil
			}
			id := strings.ReplaceAll(rel, string(filepath.Separator), "-")
			if seen[id] {
				log.Debug().Str("id", id).Str("path", path).Msg("ignoring shadowed desktop entry")
				return nil
			}
			seen[id] = true
			files = append(files, DesktopFile{ID: id, Path: path})
			return nil
		})
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("walk %s: %w", appDir, err))
		}
	}

	return files, errs.ErrorOrNil()
}

// maxSymlinkHops bounds resolveDir on symlink loops.
const maxSymlinkHops = 8

// resolveDir follows dir while it is a symlink. afero.Walk never descends
// into a symlinked root.
func resolveDir(fs afero.Fs, dir string) string {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return dir
	}
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return dir
	}

	for range maxSymlinkHops {
		info, lstatCalled, err := lstater.LstatIfPossible(dir)
		if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return dir
		}

		target, err := reader.ReadlinkIfPossible(dir)
		if err != nil {
			return dir
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dir), target)
		}
		log.Debug().Str("link", dir).Str("target", target).Msg("following symlinked applications directory")
		dir = target
	}
	return dir
}

// Build discovers, filters and groups every visible application.
// Categories are grouped by display name in order of first use.
func (b *Builder) Build() *Menu {
	files, err := Discover(b.fs, b.cfg.SearchRoots)
	errs := multierror.Append(new(multierror.Error), err)

	menu := &Menu{}
	buckets := make(map[string]*Category)

	for _, file := range files {
		d, err := ParseFile(b.fs, file.Path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		entry := d.Entry()
		if !b.filter.ShouldShow(entry) {
			log.Debug().Str("id", file.ID).Msg("hiding desktop entry")
			continue
		}

		item := b.transformer.MenuItem(entry)
		info := LookupCategory(item.Category)
		bucket, ok := buckets[info.Name]
		if !ok {
			bucket = &Category{
				Name:     info.Name,
				IconPath: b.transformer.Icon(info.Icon),
			}
			buckets[info.Name] = bucket
			menu.Categories = append(menu.Categories, bucket)
		}
		bucket.Items = append(bucket.Items, item)
	}

	if b.cfg.Sort {
		menu.Sort()
	}

	menu.Skipped = errs.ErrorOrNil()
	return menu
}

// Sort orders categories by name and items case-insensitively by display
// name. Equal names keep their discovery order.
func (m *Menu) Sort() {
	sort.SliceStable(m.Categories, func(i, j int) bool {
		return m.Categories[i].Name < m.Categories[j].Name
	})
	for _, c := range m.Categories {
		sort.SliceStable(c.Items, func(i, j int) bool {
			return strings.ToLower(c.Items[i].DisplayName) < strings.ToLower(c.Items[j].DisplayName)
		})
	}
}

// Render writes the menu in the tab separated xmenu format. Without
// icons the IMG: fields are left out entirely.
func (m *Menu) Render(w io.Writer, withIcons bool) error {
	bw := bufio.NewWriter(w)

	for _, c := range m.Categories {
		if withIcons {
			fmt.Fprintf(bw, "IMG:%s\t%s\n", c.IconPath, c.Name)
		} else {
			fmt.Fprintf(bw, "%s\n", c.Name)
		}

		for _, item := range c.Items {
			if withIcons {
				fmt.Fprintf(bw, "\tIMG:%s\t%s\t%s\n", item.IconPath, item.DisplayName, item.Command)
			} else {
				fmt.Fprintf(bw, "\t%s\t%s\n", item.DisplayName, item.Command)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write menu: %w", err)
	}
	return nil
}

// Generate builds the menu for cfg and renders it to w.
func Generate(fs afero.Fs, cfg Config, converter IconConverter, w io.Writer) (*Menu, error) {
	menu := NewBuilder(fs, cfg, converter).Build()
	if err := menu.Render(w, cfg.Icons); err != nil {
		return menu, err
	}
	return menu, nil
}
