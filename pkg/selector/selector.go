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

// Package selector walks a directory tree and picks files whose relative
// path matches a regular expression.
package selector

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrInvalidPattern is returned when the path regex does not compile
var ErrInvalidPattern = errors.New("invalid path pattern")

// 🔍 Select walks root top-down and returns the absolute paths of every file
// whose root-relative path contains a match of pathRegex. Matching is search
// semantics, not anchored: pattern "bar" selects "foo/bar.txt". Relative
// paths are normalized to forward slashes before matching, on every
// platform.
//
// Paths matching one of the doublestar ignore globs are skipped. The result
// is a one-shot snapshot: files created or removed afterwards are not seen.
func Select(ctx context.Context, root, pathRegex string, ignores []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	re, err := regexp.Compile(pathRegex)
	if err != nil {
		return nil, errors.Errorf("path pattern %q: %w: %w", pathRegex, ErrInvalidPattern, err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root %s: %w", root, err)
	}

	var matched []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if ignored(logger, ignores, rel) {
			return nil
		}

		if re.MatchString(rel) {
			matched = append(matched, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", absRoot, err)
	}

	logger.Debug().Str("root", absRoot).Str("pattern", pathRegex).Int("matched", len(matched)).Msg("selected files")
	return matched, nil
}

// 🙈 ignored reports whether rel matches one of the ignore globs
func ignored(logger *zerolog.Logger, ignores []string, rel string) bool {
	for _, pattern := range ignores {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching ignore pattern")
			continue
		}
		if ok {
			logger.Debug().Str("path", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 🔤 SortByName sorts paths by basename, with the full path as a secondary
// key so that identical basenames in different directories still order
// deterministically.
func SortByName(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		bi, bj := filepath.Base(paths[i]), filepath.Base(paths[j])
		if bi != bj {
			return bi < bj
		}
		return paths[i] < paths[j]
	})
}
