// Package launcher feeds a rendered menu to an external menu program and
// starts the command the user picked.
package launcher

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

// DefaultRenderer is the menu program used when none is configured.
const DefaultRenderer = "xmenu"

// ErrNoRenderer is returned for an empty renderer command line.
var ErrNoRenderer = errors.New("empty renderer command")

// CommandExecutor abstracts process execution so it can be mocked in tests.
type CommandExecutor interface {
	// Output runs a command with stdin attached and returns its stdout.
	Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

	// Start starts a command without waiting for it.
	Start(name string, args ...string) error
}

// RealCommandExecutor runs commands with os/exec.
type RealCommandExecutor struct{}

func (*RealCommandExecutor) Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (*RealCommandExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Process.Release()
}

// Launcher pipes menus through a renderer and runs the selection.
type Launcher struct {
	exec     CommandExecutor
	renderer []string
	dryRun   bool
	out      io.Writer
}

// New creates a Launcher. renderer is a shell-like command line, args are
// appended to it. With dryRun the selection is written to out instead of
// being started.
func New(executor CommandExecutor, renderer string, args []string, dryRun bool, out io.Writer) (*Launcher, error) {
	argv, err := shlex.Split(renderer)
	if err != nil {
		return nil, fmt.Errorf("parse renderer command %q: %w", renderer, err)
	}
	if len(argv) == 0 {
		return nil, ErrNoRenderer
	}

	return &Launcher{
		exec:     executor,
		renderer: append(argv, args...),
		dryRun:   dryRun,
		out:      out,
	}, nil
}

// Run shows menu and handles the selected command. An empty selection,
// e.g. when the menu was dismissed, is not an error.
func (l *Launcher) Run(ctx context.Context, menu []byte) error {
	out, err := l.exec.Output(ctx, bytes.NewReader(menu), l.renderer[0], l.renderer[1:]...)
	if err != nil {
		return fmt.Errorf("run renderer: %w", err)
	}

	selection := firstLine(out)
	if selection == "" {
		log.Debug().Msg("nothing selected")
		return nil
	}

	if l.dryRun {
		if _, err := fmt.Fprintln(l.out, selection); err != nil {
			return fmt.Errorf("write selection: %w", err)
		}
		return nil
	}

	log.Debug().Str("command", selection).Msg("launching")
	if err := l.exec.Start("sh", "-c", selection); err != nil {
		return fmt.Errorf("launch %q: %w", selection, err)
	}
	return nil
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
