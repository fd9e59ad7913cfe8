package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory, creating it
// if needed.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to
// the intended output when gofmt rejects it. Best-effort; never makes
// generation fail harder.
func writeDebugUnformatted(outDir, filename string, content []byte) {
	if outDir == "" || filename == "" {
		return
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return
	}

	// Keep a .go suffix so editors highlight it, without colliding with
	// real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	_ = os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
