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

package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter emits user-facing progress for a run and mirrors everything to
// the structured log at debug level. All console output of the tool goes
// through a Reporter, which keeps it testable against a plain io.Writer.
type Reporter struct {
	console io.Writer
	zlog    zerolog.Logger
	mu      sync.Mutex

	success pterm.PrefixPrinter
	info    pterm.PrefixPrinter
	errp    pterm.PrefixPrinter
}

// 🏭 NewReporter creates a reporter writing to console, picking up the
// structured logger from ctx.
func NewReporter(ctx context.Context, console io.Writer) *Reporter {
	return &Reporter{
		console: console,
		zlog:    *zerolog.Ctx(ctx),
		success: *pterm.Success.WithWriter(console),
		info:    *pterm.Info.WithWriter(console),
		errp:    *pterm.Error.WithWriter(console),
	}
}

// 📋 RuleFilesFound reports the sorted rule-file selection
func (r *Reporter) RuleFilesFound(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.info.Printfln("Found %d rules files (sorted by name):", len(paths))
	for _, p := range paths {
		fmt.Fprintf(r.console, "  %s\n", p)
	}
	r.zlog.Debug().Strs("files", paths).Msg("rule files selected")
}

// 📋 TargetFilesFound reports the size of the target selection
func (r *Reporter) TargetFilesFound(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.info.Printfln("Found %d target files.", n)
	r.zlog.Debug().Int("count", n).Msg("target files selected")
}

// 📜 StartRuleFile reports that a rules file is about to be executed
func (r *Reporter) StartRuleFile(path string, ruleCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, FormatRuleFileHeader(path, ruleCount))
	r.zlog.Debug().Str("file", path).Int("rules", ruleCount).Msg("executing rule file")
}

// 📄 StartTargetFile reports that a target file is being processed
func (r *Reporter) StartTargetFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, FormatTargetHeader(path))
	r.zlog.Debug().Str("file", path).Msg("processing target file")
}

// 📝 RuleResult reports one rule's match count against the current target
func (r *Reporter) RuleResult(idx int, pattern, replacement string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, FormatRuleResult(idx, pattern, replacement, count))
	r.zlog.Debug().
		Int("rule", idx).
		Str("pattern", pattern).
		Str("replacement", replacement).
		Int("count", count).
		Msg("rule applied")
}

// 💾 BackupCreated reports a pre-write backup copy
func (r *Reporter) BackupCreated(backupPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.success.WithPrefix(pterm.Prefix{Text: "💾"}).Println("Backup created: " + backupPath)
	r.zlog.Debug().Str("backup", backupPath).Msg("backup created")
}

// ✨ FileUpdated reports that a target file was rewritten on disk
func (r *Reporter) FileUpdated(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.success.WithPrefix(pterm.Prefix{Text: "🔄"}).Println("File updated.")
	r.zlog.Debug().Str("file", path).Msg("file updated")
}

// ⏭️ DryRunSkipped reports a change detected but not written
func (r *Reporter) DryRunSkipped(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.info.WithPrefix(pterm.Prefix{Text: "⏭"}).Println("Dry-run mode: no changes written.")
	r.zlog.Debug().Str("file", path).Msg("dry-run, changes not written")
}

// 👍 NoChanges reports a target the rules left untouched
func (r *Reporter) NoChanges(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, "   No changes.")
	r.zlog.Debug().Str("file", path).Msg("no changes")
}

// 🔬 Diff prints a preview of the pending change to a target file
func (r *Reporter) Diff(path, before, after string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, FormatDiff(before, after))
	r.zlog.Debug().Str("file", path).Msg("diff preview printed")
}

// 🏁 Summary prints the end-of-run totals
func (r *Reporter) Summary(targets, changed int, dryRun bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	suffix := ""
	if dryRun {
		suffix = " (dry-run)"
	}
	fmt.Fprintln(r.console)
	r.success.Printfln("Done. Target files processed: %d. Total file modifications: %d.%s",
		targets, changed, suffix)
	r.zlog.Debug().Int("targets", targets).Int("changed", changed).Bool("dry_run", dryRun).Msg("run complete")
}

// ❌ Error reports a fatal error to the user
func (r *Reporter) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errp.Println(err)
	r.zlog.Error().Err(err).Msg("run failed")
}
