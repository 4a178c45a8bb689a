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

package processor

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 💾 backupFile copies path to path+BackupSuffix, preserving the file mode.
// An existing backup is truncated and replaced; there is no versioning.
func backupFile(path string) (string, error) {
	backupPath := path + BackupSuffix

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("stating original: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening original: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", errors.Errorf("copying content: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", errors.Errorf("closing backup: %w", err)
	}

	return backupPath, nil
}
