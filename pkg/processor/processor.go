// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package processor runs a rule set against a single target file: read,
// transform, then back up and rewrite unless dry-running.
package processor

import (
	"context"
	"os"
	"unicode/utf8"

	"github.com/walteh/tex/pkg/rules"
	"github.com/walteh/tex/pkg/status"
	"github.com/walteh/tex/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrEncoding is returned when a target file is not valid UTF-8 text
var ErrEncoding = errors.New("target file is not valid UTF-8")

// 💾 BackupSuffix is appended to the target path for pre-write backup copies
const BackupSuffix = ".backup"

// 🔧 Options controls the write behavior of Process
type Options struct {
	Overwrite bool // write without creating a backup first
	DryRun    bool // never touch the filesystem, only report
	ShowDiff  bool // print a diff preview for changed files
}

// 🏃 Process applies rs to the file at path and returns whether it changed.
//
// The per-rule report lines are always emitted, changed or not. When the
// transform leaves the content byte-identical the filesystem is untouched
// and false is returned. Otherwise: in dry-run mode nothing is written; in a
// normal run the original is first copied to path+".backup" (skipped with
// Overwrite, any previous backup silently replaced) and the new content is
// written over the original with its prior file mode.
//
// Read failures, invalid UTF-8 content, bad rule patterns and write failures
// are all returned as errors; the caller treats them as fatal.
func Process(ctx context.Context, rep *status.Reporter, rs *rules.RuleSet, path string, opts Options) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Errorf("reading target file: %w", err)
	}
	if !utf8.Valid(raw) {
		return false, errors.Errorf("%s: %w", path, ErrEncoding)
	}

	original := string(raw)
	newText, counts, err := text.Apply(original, rs)
	if err != nil {
		return false, errors.Errorf("applying rules from %s: %w", rs.Source, err)
	}

	rep.StartTargetFile(path)
	for i, rule := range rs.Rules {
		rep.RuleResult(i+1, rule.Pattern, rule.Replacement, counts[i])
	}

	if newText == original {
		rep.NoChanges(path)
		return false, nil
	}

	if opts.ShowDiff {
		rep.Diff(path, original, newText)
	}

	if opts.DryRun {
		rep.DryRunSkipped(path)
		return true, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if !opts.Overwrite {
		backupPath, err := backupFile(path)
		if err != nil {
			return false, errors.Errorf("backing up %s: %w", path, err)
		}
		rep.BackupCreated(backupPath)
	}

	if err := os.WriteFile(path, []byte(newText), mode); err != nil {
		return false, errors.Errorf("writing %s: %w", path, err)
	}

	rep.FileUpdated(path)
	return true, nil
}
