package operation_test

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
	"github.com/walteh/tex/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func newOperator(t *testing.T, opts operation.Options) (*operation.Operator, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Reporter = status.NewReporter(context.Background(), buf)
	op, err := operation.New(opts)
	require.NoError(t, err)
	return op, buf
}

func TestExecute_EndToEnd(t *testing.T) {
	root := t.TempDir()
	write(t, root, "rules/replace.rules", "foo\nbar\n\n")
	target := write(t, root, "docs/note.txt", "foo foo baz")

	op, out := newOperator(t, operation.Options{
		Root:          root,
		RulesPattern:  `\.rules$`,
		TargetPattern: `\.txt$`,
	})

	summary, err := op.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RuleFiles)
	assert.Equal(t, 1, summary.TargetFiles)
	assert.Equal(t, 1, summary.Changed)
	assert.False(t, summary.DryRun)

	assert.Equal(t, "bar bar baz", read(t, target))
	assert.Equal(t, "foo foo baz", read(t, target+".backup"))

	assert.Contains(t, out.String(), "(replaced 2)")
	assert.Contains(t, out.String(), "Total file modifications: 1.")
}

func TestExecute_RuleFilesApplyInBasenameOrder(t *testing.T) {
	root := t.TempDir()
	// 20-second.rules depends on 10-first.rules having run already
	write(t, root, "z/10-first.rules", "foo\nbar\n\n")
	write(t, root, "a/20-second.rules", "bar\nqux\n\n")
	target := write(t, root, "doc.txt", "foo")

	op, _ := newOperator(t, operation.Options{
		Root:          root,
		RulesPattern:  `\.rules$`,
		TargetPattern: `\.txt$`,
		Overwrite:     true,
	})

	summary, err := op.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "qux", read(t, target))
	assert.Equal(t, 2, summary.Changed, "the same target changed by two rule files counts twice")
}

func TestExecute_DryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	write(t, root, "replace.rules", "foo\nbar\n\n")
	target := write(t, root, "doc.txt", "foo")

	op, out := newOperator(t, operation.Options{
		Root:          root,
		RulesPattern:  `\.rules$`,
		TargetPattern: `\.txt$`,
		DryRun:        true,
	})

	summary, err := op.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Changed)
	assert.True(t, summary.DryRun)
	assert.Equal(t, "foo", read(t, target))
	_, err = os.Stat(target + ".backup")
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, out.String(), "(dry-run)")
}

func TestExecute_EmptySelections(t *testing.T) {
	root := t.TempDir()
	write(t, root, "replace.rules", "foo\nbar\n\n")
	write(t, root, "doc.txt", "foo")

	tests := []struct {
		name          string
		rulesPattern  string
		targetPattern string
	}{
		{name: "no_rule_files", rulesPattern: `\.nope$`, targetPattern: `\.txt$`},
		{name: "no_target_files", rulesPattern: `\.rules$`, targetPattern: `\.nope$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, _ := newOperator(t, operation.Options{
				Root:          root,
				RulesPattern:  tt.rulesPattern,
				TargetPattern: tt.targetPattern,
			})

			_, err := op.Execute(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, operation.ErrEmptySelection))

			// nothing may be touched on an empty selection
			assert.Equal(t, "foo", read(t, filepath.Join(root, "doc.txt")))
		})
	}
}

func TestExecute_InvalidPatterns(t *testing.T) {
	root := t.TempDir()
	write(t, root, "replace.rules", "foo\nbar\n\n")
	write(t, root, "doc.txt", "foo")

	for _, tt := range []struct {
		name          string
		rulesPattern  string
		targetPattern string
	}{
		{name: "bad_rules_regex", rulesPattern: "(unclosed", targetPattern: `\.txt$`},
		{name: "bad_target_regex", rulesPattern: `\.rules$`, targetPattern: "(unclosed"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			op, _ := newOperator(t, operation.Options{
				Root:          root,
				RulesPattern:  tt.rulesPattern,
				TargetPattern: tt.targetPattern,
			})

			_, err := op.Execute(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, selector.ErrInvalidPattern))
		})
	}
}

func TestExecute_IgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "replace.rules", "foo\nbar\n\n")
	target := write(t, root, "doc.txt", "foo")
	skipped := write(t, root, "vendor/dep.txt", "foo")

	op, _ := newOperator(t, operation.Options{
		Root:          root,
		RulesPattern:  `\.rules$`,
		TargetPattern: `\.txt$`,
		Ignores:       []string{"vendor/**"},
		Overwrite:     true,
	})

	summary, err := op.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TargetFiles)
	assert.Equal(t, "bar", read(t, target))
	assert.Equal(t, "foo", read(t, skipped), "ignored files must not be rewritten")
}

func TestNew_Validation(t *testing.T) {
	rep := status.NewReporter(context.Background(), &bytes.Buffer{})

	for _, tt := range []struct {
		name string
		opts operation.Options
	}{
		{name: "missing_reporter", opts: operation.Options{RulesPattern: "a", TargetPattern: "b"}},
		{name: "missing_rules_pattern", opts: operation.Options{TargetPattern: "b", Reporter: rep}},
		{name: "missing_target_pattern", opts: operation.Options{RulesPattern: "a", Reporter: rep}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := operation.New(tt.opts)
			require.Error(t, err)
		})
	}
}
