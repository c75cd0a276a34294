package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

// readRecord loads an application record from path, or stdin for "-".
// The format follows the file extension unless format is set.
func readRecord(path, format string, stdin io.Reader) (schema.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	return decodeRecord(data, format)
}

func decodeRecord(data []byte, format string) (schema.Record, error) {
	record := schema.Record{}
	var err error
	switch format {
	case "", "json":
		err = json.Unmarshal(data, &record)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &record)
	case "toml":
		err = toml.Unmarshal(data, &record)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return normalize(record).(schema.Record), nil
}

// normalize rewrites decoder specific values into the plain shapes the
// validators understand.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case time.Time:
		// BurntSushi/toml marks local values with named zones.
		switch t.Location().String() {
		case "date-local":
			return t.Format(validator.DateLayout)
		case "datetime-local":
			return t.Format("2006-01-02T15:04:05")
		case "time-local":
			return t.Format("15:04:05")
		}
		return t.Format(time.RFC3339)
	}
	return v
}

func writeRecord(w io.Writer, record schema.Record, format string) error {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(record); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(record)
	}
	return fmt.Errorf("unsupported output format %q", format)
}
