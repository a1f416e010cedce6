// Package file discovers local input files for the loader.
package file

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListFiles walks root recursively and returns the absolute paths of all
// regular files whose name ends in ext (e.g. ".json"), sorted so runs are
// deterministic across filesystems.
func ListFiles(root, ext string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		out = append(out, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
