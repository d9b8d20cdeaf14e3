package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"volleyzone-tables/internal/standings"
)

// Extension is appended to a division label to form its file name.
const Extension = ".csv"

// Storage handles writing league table CSV files
type Storage struct {
	outputDir string
	encode    func(io.Writer, []standings.TeamStats) error
}

// New creates a new Storage instance writing into outputDir.
// An empty outputDir means the current working directory.
func New(outputDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(outputDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outputDir = filepath.Join(home, outputDir[2:])
	}

	if outputDir != "" {
		// Create output directory if it doesn't exist
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	return &Storage{
		outputDir: outputDir,
		encode:    WriteCSV,
	}, nil
}

// Dir returns the output directory, empty for the current directory
func (s *Storage) Dir() string {
	return s.outputDir
}

// Path returns the CSV path for a division label
func (s *Storage) Path(label string) string {
	return filepath.Join(s.outputDir, label+Extension)
}

// SaveTable writes teams to the CSV file for label and returns the path written.
// The table goes to a temporary file that replaces <label>.csv only once it is
// complete, so a failed write leaves any previous file untouched.
func (s *Storage) SaveTable(label string, teams []standings.TeamStats) (string, error) {
	path := s.Path(label)

	dir := s.outputDir
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, label+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	tmpPath := f.Name()

	encode := s.encode
	if encode == nil {
		encode = WriteCSV
	}

	if err := encode(f, teams); err != nil {
		f.Close()          // nolint:errcheck
		os.Remove(tmpPath) // nolint:errcheck
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Chmod(0644); err != nil {
		f.Close()          // nolint:errcheck
		os.Remove(tmpPath) // nolint:errcheck
		return "", fmt.Errorf("setting permissions on %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath) // nolint:errcheck
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // nolint:errcheck
		return "", fmt.Errorf("replacing %s: %w", path, err)
	}

	return path, nil
}

// WriteCSV writes the standings header followed by one line per team.
func WriteCSV(w io.Writer, teams []standings.TeamStats) error {
	if _, err := io.WriteString(w, standings.Header+"\n"); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, team := range teams {
		if _, err := io.WriteString(w, strings.Join(team.Fields(), ",")+"\n"); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	return nil
}
