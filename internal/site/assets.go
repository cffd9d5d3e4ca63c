package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// CopyAssets copies every file under srcDir matching one of patterns into
// dstDir, keeping relative paths. It returns the number of files copied.
func CopyAssets(srcDir, dstDir string, patterns []string) (int, error) {
	fsys := os.DirFS(srcDir)
	seen := map[string]bool{}

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return 0, fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return 0, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			if err := copyFile(fsys, m, filepath.Join(dstDir, filepath.FromSlash(m))); err != nil {
				return 0, err
			}
		}
	}
	return len(seen), nil
}

func copyFile(fsys fs.FS, name, dst string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
