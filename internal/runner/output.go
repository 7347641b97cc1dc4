package runner

import (
	"errors"
	"fmt"
	"io"
	"os"

	fastjson "github.com/goccy/go-json"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/internal/config"
)

var (
	ErrOutputExists  = errors.New("runner: output file already exists")
	ErrUnknownFormat = errors.New("runner: unknown output format")
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenOutput opens the file at path for writing the results. An empty path means stdout, for which closing does nothing.
// Existing files are never overwritten; the result is an error wrapping [ErrOutputExists].
func OpenOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%w: %v", ErrOutputExists, path)
	}
	return f, err
}

// WriteResults writes results to w, either as text (the progress line of each successful item, an error line for the others)
// or as JSON with one object per line.
func WriteResults(w io.Writer, results []Result, format string) error {
	switch format {
	case config.FormatText:
		for _, result := range results {
			var err error
			if result.Error == "" {
				_, err = io.WriteString(w, result.progress)
			} else {
				_, err = fmt.Fprintf(w, "Counting points on y^2 = x^3 + %vx + %v over GF<%v>: error: %v\n", result.A, result.B, result.P, result.Error)
			}
			if err != nil {
				return err
			}
		}
		return nil
	case config.FormatJSON:
		for _, result := range results {
			data, err := fastjson.Marshal(result)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteStats writes the report of the operation counters to w.
func WriteStats(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Operation counts:"); err != nil {
		return err
	}
	return callcounters.WriteReport(w, "  ")
}
