// Package record encodes and decodes the fixed-width task line format:
//
//	dd.mm.yyyy + subject
//
// The date occupies columns 0-9, the status marker column 11 and the subject
// runs from column 13 to the end of the line.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/dates"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrBadStatus     = errors.New("bad status marker")
)

// Record is one decoded line.
type Record struct {
	Date    dates.Date
	Done    bool
	Subject string
}

// LeadingDate validates only the date column of line.
func LeadingDate(line string) (dates.Date, error) {
	line = trimEOL(line)
	if len(line) < constants.DateWidth {
		return dates.Date{}, fmt.Errorf("%w: %q: shorter than the date column", ErrMalformedLine, line)
	}
	return dates.Parse(line[:constants.DateWidth])
}

// Decode parses a single line. A trailing "\n" or "\r\n" is ignored.
func Decode(line string) (Record, error) {
	line = trimEOL(line)
	if len(line) <= constants.SubjectOffset {
		return Record{}, fmt.Errorf("%w: %q: missing subject", ErrMalformedLine, line)
	}
	if line[constants.DateWidth] != ' ' || line[constants.SubjectOffset-1] != ' ' {
		return Record{}, fmt.Errorf("%w: %q: expected single spaces around the status marker", ErrMalformedLine, line)
	}

	date, err := dates.Parse(line[:constants.DateWidth])
	if err != nil {
		return Record{}, err
	}

	var done bool
	switch line[constants.StatusOffset] {
	case constants.StatusDoneChar:
		done = true
	case constants.StatusOpenChar:
		done = false
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrBadStatus, line[constants.StatusOffset])
	}

	return Record{
		Date:    date,
		Done:    done,
		Subject: line[constants.SubjectOffset:],
	}, nil
}

// Encode renders r as a newline-terminated line.
func Encode(r Record) string {
	return Format(r.Date.String(), r.Done, r.Subject)
}

// Format renders already-canonical fields as a newline-terminated line.
func Format(date string, done bool, subject string) string {
	status := constants.StatusOpenChar
	if done {
		status = constants.StatusDoneChar
	}
	return fmt.Sprintf("%s %c %s\n", date, status, subject)
}

// DecodeAll decodes every line, reporting the first failure with its line number.
func DecodeAll(lines []string) ([]Record, error) {
	recs := make([]Record, 0, len(lines))
	for i, line := range lines {
		r, err := Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
