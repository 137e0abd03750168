package medicationsparser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pharmassist/medications-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// downloadDataset fetches the dataset CSV from url and writes it to path
// as UTF-8. Spreadsheet exports are sometimes Windows-1252, so content
// that is not valid UTF-8 is decoded before writing.
func downloadDataset(url, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create dataset directory %s: %w", dir, err)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %d", url, response.StatusCode)
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	outFile, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logging.Warn("Failed to close output file", "error", err)
		}
	}()

	if _, err := io.Copy(outFile, reader); err != nil {
		return fmt.Errorf("failed to write dataset to %s: %w", path, err)
	}

	logging.Debug("Dataset downloaded", "url", url, "path", path)
	return nil
}
