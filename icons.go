package xdgmenu

// Theme info extracted from index.theme
type ThemeInfo struct {
	// Name of the theme directory, e.g. "Adwaita".
	Name string

	// Absolute path of the theme directory inside one search root.
	Dir string

	// Subdirectories listed in the Directories key, in listed order.
	// Subdirectories without a valid Size are left out.
	Directories []SubDirIconInfo
}

// DirType decides how a subdirectory is matched against a requested size.
type DirType int

const (
	Threshold DirType = iota
	Scalable
	Fixed
)

func (t DirType) String() string {
	switch t {
	case Scalable:
		return "Scalable"
	case Fixed:
		return "Fixed"
	default:
		return "Threshold"
	}
}

// parseDirType maps an index.theme Type value. Unknown values report false.
func parseDirType(s string) (DirType, bool) {
	switch s {
	case "Threshold":
		return Threshold, true
	case "Scalable":
		return Scalable, true
	case "Fixed":
		return Fixed, true
	}
	return Threshold, false
}

// Common properties of icons listed under a sub-directory
//
// Sub-directory here is the inner-most directory, directly
// under which there are icon files
type SubDirIconInfo struct {
	// Path relative to the theme directory, e.g. "24x24/apps".
	Name string

	// Nominal (unscaled) size of the icons in this directory.
	Size int

	// Target scale of the icons in this directory.
	// Defaults to 1.
	Scale int

	// If not specified, the default is Threshold.
	Type DirType

	// Defaults to the value of Size if not present.
	MaxSize int

	// Defaults to the value of Size if not present.
	MinSize int

	// The icons in this directory can be used if the size
	// differ at most this much from the desired size.
	//
	// Defaults to 2 if not present.
	Threshold int
}

// MatchesSize reports whether icons in the directory can be used at size.
// Only unscaled directories ever match.
func (s SubDirIconInfo) MatchesSize(size int) bool {
	if s.Scale != 1 {
		return false
	}

	switch s.Type {
	case Fixed:
		return s.Size == size
	case Scalable:
		return s.MinSize <= size && size <= s.MaxSize
	case Threshold:
		return abs(size-s.Size) <= s.Threshold
	}

	return false
}
