// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// IndexFile is the root index file name.
const IndexFile = "index.md"

const indexHeader = "# Literature Index\n\n"

// AppendIndex appends one entry per folder to the vault's index.md,
// creating the file with its header when absent. Each entry links the
// folder's main note. The file is only ever appended to, never rewritten.
func AppendIndex(root string, folders []string) error {
	if len(folders) == 0 {
		return nil
	}

	path := filepath.Join(root, IndexFile)
	_, statErr := os.Stat(path)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening index %s: %w", path, err)
	}
	defer f.Close()

	if os.IsNotExist(statErr) {
		if _, err := f.WriteString(indexHeader); err != nil {
			return fmt.Errorf("writing index header: %w", err)
		}
	}

	for _, folder := range folders {
		if _, err := fmt.Fprintf(f, "- [[%s/main|%s]]\n", folder, folder); err != nil {
			return fmt.Errorf("appending index entry for %s: %w", folder, err)
		}
	}
	return nil
}
