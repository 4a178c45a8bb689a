package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tex/pkg/operation"
	"github.com/walteh/tex/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid_pattern",
			err:  errors.Errorf("selecting: %w", selector.ErrInvalidPattern),
			want: exitInvalidPattern,
		},
		{
			name: "empty_selection",
			err:  errors.Errorf("selecting: %w", operation.ErrEmptySelection),
			want: exitEmptySelection,
		},
		{
			name: "generic_failure",
			err:  errors.New("disk on fire"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func resetFlags() {
	overwrite = false
	dryRun = false
	showDiff = false
	rootDir = ""
	ignores = nil
	configFile = ""
	debugMode = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_EndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "replace.rules"), []byte("foo\nbar\n\n"), 0644))
	target := filepath.Join(root, "doc.txt")
	require.NoError(t, os.WriteFile(target, []byte("foo foo baz"), 0644))

	out, err := execute(t, "--root", root, `\.rules$`, `\.txt$`)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "bar bar baz", string(content))

	backup, err := os.ReadFile(target + ".backup")
	require.NoError(t, err)
	assert.Equal(t, "foo foo baz", string(backup))

	assert.Contains(t, out, "Total file modifications: 1.")
}

func TestRootCmd_EmptySelectionError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.txt"), []byte("foo"), 0644))

	_, err := execute(t, "--root", root, `\.rules$`, `\.txt$`)
	require.Error(t, err)
	assert.Equal(t, exitEmptySelection, exitCodeFor(err))
}

func TestRootCmd_InvalidRegexError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.txt"), []byte("foo"), 0644))

	_, err := execute(t, "--root", root, "(unclosed", `\.txt$`)
	require.Error(t, err)
	assert.Equal(t, exitInvalidPattern, exitCodeFor(err))
}

func TestRootCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "only-one")
	require.Error(t, err)
}

func TestRootCmd_ConfigDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "replace.rules"), []byte("foo\nbar\n\n"), 0644))
	target := filepath.Join(root, "doc.txt")
	require.NoError(t, os.WriteFile(target, []byte("foo"), 0644))

	cfgPath := filepath.Join(t.TempDir(), "tex.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: "+root+"\ndry_run: true\n"), 0644))

	out, err := execute(t, "--config", cfgPath, `\.rules$`, `\.txt$`)
	require.NoError(t, err)

	// config supplied both the root and the dry-run default
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "foo", string(content))
	assert.Contains(t, out, "(dry-run)")
}

func TestRootCmd_DebugFlag(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "replace.rules"), []byte("foo\nbar\n\n"), 0644))
	target := filepath.Join(root, "doc.txt")
	require.NoError(t, os.WriteFile(target, []byte("foo"), 0644))

	out, err := execute(t, "--debug", "--root", root, `\.rules$`, `\.txt$`)
	require.NoError(t, err)
	assert.True(t, debugMode, "the --debug flag must bind to debugMode")
	assert.Contains(t, out, "Total file modifications: 1.")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "bar", string(content))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tex version info:")
}
