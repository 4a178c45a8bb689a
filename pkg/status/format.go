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
	"fmt"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎨 Display configuration
const (
	ruleIndent = 3 // spaces to indent per-rule result lines
)

// 🎯 FormatRuleResult formats a single per-rule report line
func FormatRuleResult(idx int, pattern, replacement string, count int) string {
	return fmt.Sprintf("%*sRule %d: %s -> %s (replaced %d)",
		ruleIndent, "",
		idx,
		color.CyanString("%s", pattern),
		color.GreenString("%s", replacement),
		count,
	)
}

// 🎯 FormatTargetHeader formats the per-target-file section header
func FormatTargetHeader(path string) string {
	return fmt.Sprintf("\n== Processing target file: %s", color.New(color.Bold).Sprint(path))
}

// 🎯 FormatRuleFileHeader formats the per-rules-file section header
func FormatRuleFileHeader(path string, ruleCount int) string {
	return fmt.Sprintf("\n=== Executing rules from: %s (%d rules) ===",
		color.New(color.Bold).Sprint(path), ruleCount)
}

// 🔬 FormatDiff renders a character-level diff between two versions of a
// file's content, insertions green and deletions red.
func FormatDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
