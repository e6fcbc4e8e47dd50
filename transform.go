package xdgmenu

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// OthersCategory holds entries without a known main category.
const OthersCategory = "Others"

// CategoryInfo is how a main category is shown in the menu.
type CategoryInfo struct {
	Name string
	Icon string
}

var categories = map[string]CategoryInfo{
	"AudioVideo":   {Name: "Multimedia", Icon: "applications-multimedia"},
	"Audio":        {Name: "Multimedia", Icon: "applications-multimedia"},
	"Video":        {Name: "Multimedia", Icon: "applications-multimedia"},
	"Development":  {Name: "Development", Icon: "applications-development"},
	"Education":    {Name: "Education", Icon: "applications-education"},
	"Game":         {Name: "Games", Icon: "applications-games"},
	"Graphics":     {Name: "Graphics", Icon: "applications-graphics"},
	"Network":      {Name: "Internet", Icon: "applications-internet"},
	"Office":       {Name: "Office", Icon: "applications-office"},
	"Science":      {Name: "Science", Icon: "applications-science"},
	"Settings":     {Name: "Settings", Icon: "preferences-desktop"},
	"System":       {Name: "System", Icon: "applications-system"},
	"Utility":      {Name: "Accessories", Icon: "applications-accessories"},
	OthersCategory: {Name: "Others", Icon: "applications-other"},
}

// LookupCategory returns the display information of a main category, falling
// back to Others for unknown names.
func LookupCategory(name string) CategoryInfo {
	if info, ok := categories[name]; ok {
		return info
	}
	return categories[OthersCategory]
}

// MenuItem is one launchable line of the menu.
type MenuItem struct {
	// Main category key, e.g. "Utility".
	Category string

	// Empty when no icon was found.
	IconPath string

	DisplayName string
	Command     string
}

// IconConverter rewrites a resolved icon path, e.g. to a format the
// menu renderer can draw.
type IconConverter interface {
	Convert(iconPath string) (string, error)
}

// fieldCodes strips file and URL codes and fills %c and %k. Every other
// %x is left untouched.
func fieldCodes(name, path string) *strings.Replacer {
	return strings.NewReplacer(
		"%f", "",
		"%F", "",
		"%u", "",
		"%U", "",
		"%c", name,
		"%k", path,
	)
}

// Transformer turns visible desktop entries into menu items.
type Transformer struct {
	icons        *IconLookup
	converter    IconConverter
	fallbackIcon string
	terminal     string
	genericName  bool
	withIcons    bool
}

// NewTransformer creates a Transformer. converter may be nil.
func NewTransformer(icons *IconLookup, converter IconConverter, cfg Config) *Transformer {
	return &Transformer{
		icons:        icons,
		converter:    converter,
		fallbackIcon: cfg.FallbackIcon,
		terminal:     cfg.Terminal,
		genericName:  cfg.GenericName,
		withIcons:    cfg.Icons,
	}
}

// Command builds the command line of entry. Removed field codes leave
// their surrounding spaces in place; only the ends are trimmed.
func (t *Transformer) Command(entry Section) string {
	cmd := strings.TrimSpace(fieldCodes(entry["Name"], entry["Path"]).Replace(entry["Exec"]))
	if entry.Bool("Terminal") {
		cmd = t.terminal + " -e " + cmd
	}
	return cmd
}

// DisplayName is Name, with GenericName in parentheses when set.
func (t *Transformer) DisplayName(entry Section) string {
	name := entry["Name"]
	if generic := entry["GenericName"]; t.genericName && generic != "" {
		return name + " (" + generic + ")"
	}
	return name
}

// MainCategory returns the first category of entry found in the category
// table, in the order the entry lists them.
func MainCategory(entry Section) string {
	for _, c := range splitList(entry["Categories"], ";") {
		if _, ok := categories[c]; ok {
			return c
		}
	}
	return OthersCategory
}

// Icon resolves iconName with the configured fallback. It returns an
// empty string when icons are disabled or nothing was found.
func (t *Transformer) Icon(iconName string) string {
	if !t.withIcons || t.icons == nil {
		return ""
	}

	iconPath, ok := t.icons.Resolve(iconName, t.fallbackIcon)
	if !ok {
		return ""
	}

	if t.converter != nil {
		converted, err := t.converter.Convert(iconPath)
		if err != nil {
			log.Debug().Err(err).Str("icon", iconPath).Msg("keeping unconverted icon")
			return iconPath
		}
		return converted
	}
	return iconPath
}

// MenuItem converts a visible entry.
func (t *Transformer) MenuItem(entry Section) MenuItem {
	return MenuItem{
		Category:    MainCategory(entry),
		IconPath:    t.Icon(entry["Icon"]),
		DisplayName: t.DisplayName(entry),
		Command:     t.Command(entry),
	}
}
