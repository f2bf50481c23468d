package utils

import (
	"fmt"
	"io"
	"os"
)

// ReadStdin reads all content from r, the command's standard input.
// Returns an error if the input is empty, is a terminal (no piped data), or cannot be read.
// Readers that are not files are read as they are.
func ReadStdin(r io.Reader) ([]byte, error) {
	if f, ok := r.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat stdin: %w", err)
		}

		// If ModeCharDevice is set, stdin is connected to a terminal.
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no data provided on stdin (hint: pipe a JSON or YAML document to this command)")
		}
	}

	return ReadAll(r)
}

// ReadAll reads r to the end and rejects empty input.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	return data, nil
}
