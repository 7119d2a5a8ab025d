package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aquasense/hydrolens/pkg/errors"
	"github.com/aquasense/hydrolens/pkg/models"
)

// loadReadings reads a JSON array of readings from path.
func loadReadings(path string) ([]models.Reading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var readings []models.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeValidation,
			"MALFORMED_INPUT", "input must be a JSON array of readings")
	}
	return readings, nil
}

// writeJSON marshals v and writes it to path, or stdout when path is "-".
func writeJSON(path string, v interface{}, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
