package xdgmenu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testIndex = `[Icon Theme]
Name=Test
Comment=Theme used in tests
Directories=16x16/apps,24x24/apps,32x32/apps,48x48/apps,scalable/apps,

[16x16/apps]
Size=16

[24x24/apps]
Size=24
Type=Threshold

[32x32/apps]
Size=32
Type=Fixed

[48x48/apps]
Size=48
Type=Fixed

[scalable/apps]
Size=16
MinSize=8
MaxSize=512
Type=Scalable
`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func testConfig(roots ...string) Config {
	cfg := DefaultConfig()
	cfg.SearchRoots = roots
	return cfg
}

// failingFs fails to open one path and behaves like the wrapped Fs otherwise.
type failingFs struct {
	afero.Fs
	path string
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}
