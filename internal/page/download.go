package page

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirDownloader saves downloads into a directory.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Save(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("error creating download directory: %w", err)
	}

	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error saving %s: %w", name, err)
	}

	return nil
}
