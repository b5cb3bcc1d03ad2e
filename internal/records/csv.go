package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names of the migration CSV. The format is owned by the Plex
// export conversion step and is honored here bit-for-bit.
const (
	columnUsername   = "Username"
	columnEmail      = "Email"
	columnPassphrase = "Passphrase"
	columnThumb      = "Thumb"
)

// LoadOption configures CSV loading.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fillPassphrase func() (string, error)
}

// WithGeneratedPassphrases fills rows that carry an empty passphrase using
// gen. Without this option such rows fail validation at load time.
func WithGeneratedPassphrases(gen func() (string, error)) LoadOption {
	return func(o *loadOptions) {
		o.fillPassphrase = gen
	}
}

// LoadCSV reads a migration CSV file into a batch of user records.
// Username, Email and Passphrase columns are required; Thumb is optional.
// Record order follows file order.
func LoadCSV(path string, opts ...LoadOption) ([]UserRecord, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadCSV(f, opts...)
}

// ReadCSV parses migration CSV data from r.
func ReadCSV(r io.Reader, opts ...LoadOption) ([]UserRecord, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range []string{columnUsername, columnEmail, columnPassphrase} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	var batch []UserRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		rec := UserRecord{
			Username:   field(row, index, columnUsername),
			Email:      field(row, index, columnEmail),
			Passphrase: field(row, index, columnPassphrase),
		}
		if i, ok := index[columnThumb]; ok && i < len(row) {
			rec.AvatarSourceURL = strings.TrimSpace(row[i])
		}

		if rec.Passphrase == "" && o.fillPassphrase != nil {
			rec.Passphrase, err = o.fillPassphrase()
			if err != nil {
				return nil, fmt.Errorf("failed to generate passphrase for line %d: %w", line, err)
			}
		}

		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}

		batch = append(batch, rec)
	}

	return batch, nil
}

// WriteCSV writes a batch of records as a migration CSV, including the
// Thumb column so avatar source URLs survive the round trip.
func WriteCSV(w io.Writer, batch []UserRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{columnUsername, columnEmail, columnPassphrase, columnThumb}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range batch {
		if err := writer.Write([]string{rec.Username, rec.Email, rec.Passphrase, rec.AvatarSourceURL}); err != nil {
			return fmt.Errorf("failed to write record %q: %w", rec.Username, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
