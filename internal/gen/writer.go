package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adapter-generator/internal/common"
)

const dirPerm = 0o755

// WriteFiles writes all generated files to the output directory, creating
// it if needed. Each file is published atomically.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		if err := common.WriteFileAtomic(filepath.Join(outputDir, file.Filename), file.Content); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// writeDebugUnformatted dumps source that failed to format into dir as
// <name>.unformatted.go so the failure can be inspected.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(filename), ".go") + ".unformatted.go"

	return common.WriteFileAtomic(filepath.Join(dir, name), content)
}
