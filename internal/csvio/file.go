package csvio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// RequireFile is the precondition check every stage runs before touching
// its inputs. hint names the stage that produces the file.
func RequireFile(path string, hint string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("missing required input %s (%s)", path, hint)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// WriteRecords marshals a slice of tagged structs to path, creating parent
// directories and overwriting any previous run's output.
func WriteRecords(path string, records interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := gocsv.MarshalFile(records, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadRecords unmarshals a typed table written by an earlier stage.
func ReadRecords(path string, records interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, records); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
