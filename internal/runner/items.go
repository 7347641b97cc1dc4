package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidArguments = errors.New("runner: curve parameters must be given as triples p A B")

// Item is one curve y^2 = x^3 + Ax + B over GF(P) to count points on.
type Item struct {
	P int64
	A int64
	B int64
	// Line is the line number in the input file, or 0 for items from the command line.
	Line int
}

func (item Item) String() string {
	return fmt.Sprintf("y^2 = x^3 + %vx + %v over GF<%v>", item.A, item.B, item.P)
}

func parseTriple(fields []string) (Item, error) {
	if len(fields) != 3 {
		return Item{}, fmt.Errorf("%w: got %v values", ErrInvalidArguments, len(fields))
	}
	var values [3]int64
	for i, field := range fields {
		value, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Item{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
		values[i] = value
	}
	return Item{P: values[0], A: values[1], B: values[2]}, nil
}

// ItemsFromArgs turns command line arguments p1 A1 B1 p2 A2 B2 ... into items.
func ItemsFromArgs(args []string) ([]Item, error) {
	if len(args)%3 != 0 {
		return nil, fmt.Errorf("%w: got %v arguments", ErrInvalidArguments, len(args))
	}
	items := make([]Item, 0, len(args)/3)
	for i := 0; i < len(args); i += 3 {
		item, err := parseTriple(args[i : i+3])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadItems reads one "p A B" triple per line from r. Blank lines and lines starting with # are skipped.
// Malformed lines are logged with their line number and skipped; source names r in those messages.
func ReadItems(r io.Reader, source string) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		item, err := parseTriple(strings.Fields(line))
		if err != nil {
			log.WithFields(log.Fields{"file": source, "line": lineNumber}).WithError(err).Warn("skipping malformed line")
			continue
		}
		item.Line = lineNumber
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("runner: reading %v: %w", source, err)
	}
	return items, nil
}
