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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/tex/pkg/processor"
	"github.com/walteh/tex/pkg/rules"
	"github.com/walteh/tex/pkg/selector"
	"github.com/walteh/tex/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrEmptySelection is returned when a path pattern matches no files
var ErrEmptySelection = errors.New("no files matched")

// 🔧 Options configures a batch replacement run
type Options struct {
	// Root is the directory both selections are rooted at. Defaults to ".".
	Root string
	// RulesPattern selects rule files by relative path regex.
	RulesPattern string
	// TargetPattern selects target files by relative path regex.
	TargetPattern string
	// Ignores are doublestar globs excluded from both selections.
	Ignores []string

	// Overwrite writes changes without creating .backup copies.
	Overwrite bool
	// DryRun reports changes without touching the filesystem.
	DryRun bool
	// ShowDiff prints a diff preview for every changed file.
	ShowDiff bool

	// Reporter receives all user-facing output.
	Reporter *status.Reporter
}

// 📊 Summary holds the end-of-run totals
type Summary struct {
	RuleFiles   int  // rule files executed
	TargetFiles int  // target files discovered
	Changed     int  // changed results summed over every rule-file x target pair
	DryRun      bool // whether this was a dry run
}

// 🎮 Operator drives one full run: select rule files, select targets, apply
// every rule file to every target in order.
type Operator struct {
	opts Options
}

// 🏭 New creates an operator, validating its options
func New(opts Options) (*Operator, error) {
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if opts.RulesPattern == "" {
		return nil, errors.New("rules pattern is required")
	}
	if opts.TargetPattern == "" {
		return nil, errors.New("target pattern is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Operator{opts: opts}, nil
}

// 🏃 Execute runs the batch replacement.
//
// Rule files are sorted by basename before execution so that later rule
// files can rely on earlier ones having already run; target files stay in
// walk order, since targets are independent of each other. Both selections
// are snapshots taken up front. A target changed by two different rule files
// counts twice in the summary.
func (o *Operator) Execute(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	rep := o.opts.Reporter

	ruleFiles, err := selector.Select(ctx, o.opts.Root, o.opts.RulesPattern, o.opts.Ignores)
	if err != nil {
		return nil, errors.Errorf("selecting rules files: %w", err)
	}
	if len(ruleFiles) == 0 {
		return nil, errors.Errorf("no rules files matched %q: %w", o.opts.RulesPattern, ErrEmptySelection)
	}
	selector.SortByName(ruleFiles)
	rep.RuleFilesFound(ruleFiles)

	targets, err := selector.Select(ctx, o.opts.Root, o.opts.TargetPattern, o.opts.Ignores)
	if err != nil {
		return nil, errors.Errorf("selecting target files: %w", err)
	}
	if len(targets) == 0 {
		return nil, errors.Errorf("no target files matched %q: %w", o.opts.TargetPattern, ErrEmptySelection)
	}
	rep.TargetFilesFound(len(targets))

	procOpts := processor.Options{
		Overwrite: o.opts.Overwrite,
		DryRun:    o.opts.DryRun,
		ShowDiff:  o.opts.ShowDiff,
	}

	summary := &Summary{
		RuleFiles:   len(ruleFiles),
		TargetFiles: len(targets),
		DryRun:      o.opts.DryRun,
	}

	for _, ruleFile := range ruleFiles {
		rs, err := rules.Load(ctx, ruleFile)
		if err != nil {
			return nil, errors.Errorf("loading rules: %w", err)
		}
		rep.StartRuleFile(ruleFile, rs.Len())

		for _, target := range targets {
			changed, err := processor.Process(ctx, rep, rs, target, procOpts)
			if err != nil {
				return nil, errors.Errorf("processing %s: %w", target, err)
			}
			if changed {
				summary.Changed++
			}
		}

		logger.Debug().Str("rules", ruleFile).Msg("rule file executed against all targets")
	}

	rep.Summary(summary.TargetFiles, summary.Changed, summary.DryRun)
	return summary, nil
}
