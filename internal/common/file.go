package common

import (
	"os"
	"path/filepath"
)

// FilePerm is the mode of files written by WriteFileAtomic.
const FilePerm = 0o644

// WriteFileAtomic replaces path with content through a rename, so readers
// never observe a partial file. Concurrent writers race; the last rename
// wins.
func WriteFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	name := tmp.Name()

	defer func() {
		// Only reached with the file still present when something failed.
		_ = os.Remove(name)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(name, FilePerm); err != nil {
		return err
	}

	return os.Rename(name, path)
}
