package launcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	var input []byte
	if stdin != nil {
		input, _ = io.ReadAll(stdin)
	}
	called := m.Called(ctx, string(input), name, args)
	out, _ := called.Get(0).([]byte)
	return out, called.Error(1)
}

func (m *MockCommandExecutor) Start(name string, args ...string) error {
	called := m.Called(name, args)
	return called.Error(0)
}

const menu = "IMG:\tAccessories\n\tIMG:\tEditor\teditor\n"

func TestRunStartsSelection(t *testing.T) {
	t.Parallel()

	cmd := &MockCommandExecutor{}
	cmd.On("Output", mock.Anything, menu, "xmenu", []string{"-r"}).Return([]byte("editor\n"), nil)
	cmd.On("Start", "sh", []string{"-c", "editor"}).Return(nil)

	var out bytes.Buffer
	l, err := New(cmd, "xmenu", []string{"-r"}, false, &out)
	require.NoError(t, err)

	require.NoError(t, l.Run(context.Background(), []byte(menu)))
	assert.Empty(t, out.String())
	cmd.AssertExpectations(t)
}

func TestRunDryRunPrintsSelection(t *testing.T) {
	t.Parallel()

	cmd := &MockCommandExecutor{}
	cmd.On("Output", mock.Anything, menu, "xmenu", []string{"-i", "-p", "0x0"}).
		Return([]byte("xterm -e htop\nignored\n"), nil)

	var out bytes.Buffer
	l, err := New(cmd, "xmenu -i", []string{"-p", "0x0"}, true, &out)
	require.NoError(t, err)

	require.NoError(t, l.Run(context.Background(), []byte(menu)))
	assert.Equal(t, "xterm -e htop\n", out.String())
	cmd.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestRunNothingSelected(t *testing.T) {
	t.Parallel()

	cmd := &MockCommandExecutor{}
	cmd.On("Output", mock.Anything, menu, "xmenu", []string{}).Return([]byte{}, nil)

	l, err := New(cmd, "xmenu", nil, false, io.Discard)
	require.NoError(t, err)

	require.NoError(t, l.Run(context.Background(), []byte(menu)))
	cmd.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	cmd := &MockCommandExecutor{}
	cmd.On("Output", mock.Anything, menu, "xmenu", []string{}).Return([]byte(nil), errors.New("exit status 1"))

	l, err := New(cmd, "xmenu", nil, false, io.Discard)
	require.NoError(t, err)
	err = l.Run(context.Background(), []byte(menu))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run renderer")

	start := &MockCommandExecutor{}
	start.On("Output", mock.Anything, menu, "xmenu", []string{}).Return([]byte("app\n"), nil)
	start.On("Start", "sh", []string{"-c", "app"}).Return(errors.New("no shell"))

	l, err = New(start, "xmenu", nil, false, io.Discard)
	require.NoError(t, err)
	err = l.Run(context.Background(), []byte(menu))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch")
}

func TestNewRendererCommand(t *testing.T) {
	t.Parallel()

	l, err := New(&MockCommandExecutor{}, `xmenu -t "My Menu"`, []string{"-w"}, false, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"xmenu", "-t", "My Menu", "-w"}, l.renderer)

	_, err = New(&MockCommandExecutor{}, "  ", nil, false, io.Discard)
	require.ErrorIs(t, err, ErrNoRenderer)

	_, err = New(&MockCommandExecutor{}, `xmenu "unterminated`, nil, false, io.Discard)
	require.Error(t, err)
}
