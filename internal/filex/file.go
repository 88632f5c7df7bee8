// Package filex contains the few filesystem helpers the CLI needs to store
// document previews next to the working directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubdDir creates dirName under the current working directory if it
// is missing and returns its absolute path. An absolute dirName is used
// as is.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SaveUnique writes data to dir/name without overwriting: an existing file
// makes it try "name (1).ext", "name (2).ext" and so on. Only the base of
// name is used, so server-supplied names cannot escape dir.
func SaveUnique(dir, name string, data []byte) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "download"
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(dir, base)
	for i := 1; ; i++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
		if err == nil {
			if _, err := f.Write(data); err != nil {
				_ = f.Close()
				return "", fmt.Errorf("write %s: %w", candidate, err)
			}
			return candidate, f.Close()
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
}
