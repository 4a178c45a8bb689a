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

// Package rules loads ordered regex-replacement rule sets from rule files.
package rules

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrNotFound is returned when the rules path is not a regular file
var ErrNotFound = errors.New("rules file not found")

// 🎯 Rule is a single (pattern, replacement) pair. The pattern is a regular
// expression; the replacement may reference capture groups ($1, $2, ...).
type Rule struct {
	Pattern     string
	Replacement string
}

// 📦 RuleSet is an ordered sequence of rules loaded from one file. Rules are
// applied in file order and never reordered. A RuleSet is immutable once
// loaded.
type RuleSet struct {
	Source string // path of the file the rules were loaded from
	Rules  []Rule
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.Rules)
}

// 🏭 Load reads a rules file into a RuleSet.
//
// The on-disk format is line-oriented: groups of up to three lines, where
// line 0 is the pattern, line 1 is the replacement and line 2 is a separator
// whose content is ignored (by convention blank, but never validated). A
// trailing group needs only the first two lines. Groups whose pattern line is
// empty are discarded; that is the only validation performed here. Regex
// syntax is deliberately NOT checked at load time, it surfaces when the rule
// is applied.
func Load(ctx context.Context, path string) (*RuleSet, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.Errorf("%s: %w", path, ErrNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rules file %s: %w", path, err)
	}

	lines := splitLines(string(data))

	rs := &RuleSet{Source: path}
	for i := 0; i+1 < len(lines); i += 3 {
		pattern := lines[i]
		replacement := lines[i+1]
		if pattern == "" {
			logger.Debug().Str("file", path).Int("line", i+1).Msg("skipping rule with empty pattern")
			continue
		}
		rs.Rules = append(rs.Rules, Rule{Pattern: pattern, Replacement: replacement})
	}

	logger.Debug().Str("file", path).Int("rules", rs.Len()).Msg("loaded rule set")
	return rs, nil
}

// splitLines splits text into lines with line endings stripped. A trailing
// newline does not produce a phantom empty line, matching how the rule
// windows are counted.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
