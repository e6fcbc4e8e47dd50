package xdgmenu

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func app(kv ...string) Section {
	s := Section{"Type": "Application", "Exec": "app", "Name": "App"}
	for i := 0; i+1 < len(kv); i += 2 {
		s[kv[i]] = kv[i+1]
	}
	return s
}

func TestShouldShow(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/usr/bin/present", "#!/bin/sh\n")
	writeFile(t, fs, "/opt/tool/bin/tool", "")
	writeFile(t, fs, "/usr/local/bin/dir/keep", "")

	cfg := testConfig("/data")
	cfg.ExecPath = []string{"/usr/local/bin", "/usr/bin"}
	cfg.CurrentDesktop = "XFCE"

	missingExec := app()
	delete(missingExec, "Exec")

	tests := []struct {
		name     string
		entry    Section
		expected bool
	}{
		{"plain application", app(), true},
		{"missing Exec", missingExec, false},
		{"empty Exec still counts as present", app("Exec", ""), true},
		{"NoDisplay", app("NoDisplay", "true"), false},
		{"NoDisplay false", app("NoDisplay", "false"), true},
		{"Hidden", app("Hidden", "true"), false},
		{"Link type", app("Type", "Link"), false},
		{"missing Type", Section{"Exec": "app"}, false},
		{"TryExec on PATH", app("TryExec", "present"), true},
		{"TryExec missing from PATH", app("TryExec", "absent"), false},
		{"TryExec directory on PATH", app("TryExec", "dir"), false},
		{"TryExec absolute present", app("TryExec", "/opt/tool/bin/tool"), true},
		{"TryExec absolute missing", app("TryExec", "/opt/tool/bin/gone"), false},
		{"empty TryExec is ignored", app("TryExec", ""), true},
		{"TryExec outcome is final over OnlyShowIn", app("TryExec", "present", "OnlyShowIn", "GNOME;"), true},
		{"NotShowIn current", app("NotShowIn", "GNOME;XFCE;"), false},
		{"NotShowIn other", app("NotShowIn", "GNOME;KDE;"), true},
		{"OnlyShowIn current", app("OnlyShowIn", "XFCE;"), true},
		{"OnlyShowIn other", app("OnlyShowIn", "GNOME;KDE;"), false},
		{"OnlyShowIn empty", app("OnlyShowIn", ""), false},
		{"empty NotShowIn identifiers ignored", app("NotShowIn", ";;KDE"), true},
		{"empty OnlyShowIn identifiers ignored", app("OnlyShowIn", ";;KDE;"), false},
		{"NotShowIn checked before OnlyShowIn", app("NotShowIn", "XFCE;", "OnlyShowIn", "XFCE;"), false},
	}

	f := NewFilter(fs, cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, f.ShouldShow(tt.entry))
		})
	}
}

func TestShouldShowTryExecPrecedence(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/data")
	cfg.CurrentDesktop = "GNOME"
	f := NewFilter(afero.NewMemMapFs(), cfg)

	// Rejected by TryExec even though the desktop matches.
	assert.False(t, f.ShouldShow(app("TryExec", "/nonexistent/binary", "OnlyShowIn", "GNOME;")))
	assert.True(t, f.ShouldShow(app("OnlyShowIn", "GNOME;")))
}

func TestShouldShowAllDesktops(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/data")
	cfg.CurrentDesktop = "XFCE"
	cfg.AllDesktops = true
	f := NewFilter(afero.NewMemMapFs(), cfg)

	assert.True(t, f.ShouldShow(app("OnlyShowIn", "GNOME;")))
	assert.True(t, f.ShouldShow(app("NotShowIn", "XFCE;")))
	assert.False(t, f.ShouldShow(app("NoDisplay", "true")))
	assert.False(t, f.ShouldShow(app("TryExec", "absent")))
}

func TestShouldShowSubstringMatch(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/data")
	cfg.CurrentDesktop = "LXQKDE"
	f := NewFilter(afero.NewMemMapFs(), cfg)

	assert.True(t, f.ShouldShow(app("OnlyShowIn", "KDE;")))
	assert.False(t, f.ShouldShow(app("NotShowIn", "KDE;")))

	cfg.CurrentDesktop = "ubuntu:GNOME"
	f = NewFilter(afero.NewMemMapFs(), cfg)
	assert.True(t, f.ShouldShow(app("OnlyShowIn", "GNOME;")))
}
