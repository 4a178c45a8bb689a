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

// Package text applies ordered regex-replacement rule sets to text buffers.
package text

import (
	"regexp"

	"github.com/walteh/tex/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrBadPattern is returned when a rule pattern fails to compile
var ErrBadPattern = errors.New("invalid rule pattern")

// 🔄 Apply runs every rule of rs against text, strictly in rule order, and
// returns the rewritten text together with one match count per rule.
//
// Rule i is matched against the text as already rewritten by rules 0..i-1,
// not against the original buffer: later rules see (and may depend on) the
// cumulative effect of earlier ones. The count recorded for a rule is the
// number of non-overlapping matches found before that rule's own
// substitution runs. Patterns are compiled in multiline mode, so ^ and $
// anchor at line boundaries within the buffer.
//
// A pattern that does not compile aborts the whole apply with a wrapped
// ErrBadPattern. Applying an empty rule set is the identity.
func Apply(text string, rs *rules.RuleSet) (string, []int, error) {
	counts := make([]int, 0, rs.Len())

	for i, rule := range rs.Rules {
		re, err := regexp.Compile("(?m)" + rule.Pattern)
		if err != nil {
			return "", nil, errors.Errorf("rule %d pattern %q: %w: %w", i+1, rule.Pattern, ErrBadPattern, err)
		}

		counts = append(counts, len(re.FindAllStringIndex(text, -1)))
		text = re.ReplaceAllString(text, rule.Replacement)
	}

	return text, counts, nil
}

// TODO(dr.methodical): 🧪 Add benchmarks for large buffers with many rules
