// Package history reads the archive back as per-day groups. The archive has
// no explicit separators: consecutive lines with the same date form one day.
package history

import (
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/storage"
)

// Day is one archived entry.
type Day struct {
	Date  dates.Date
	Tasks []record.Record
}

// Done returns the number of completed tasks.
func (d Day) Done() int {
	n := 0
	for _, t := range d.Tasks {
		if t.Done {
			n++
		}
	}
	return n
}

// Group splits records into days by consecutive equal dates. A date that
// reappears later starts a new group.
func Group(recs []record.Record) []Day {
	var days []Day
	for _, r := range recs {
		if n := len(days); n > 0 && days[n-1].Date.Equal(r.Date) {
			days[n-1].Tasks = append(days[n-1].Tasks, r)
			continue
		}
		days = append(days, Day{Date: r.Date, Tasks: []record.Record{r}})
	}
	return days
}

// Load reads and groups the whole archive. Undecodable lines are logged and
// skipped so one bad archived entry does not hide the rest of the history.
func Load(store storage.Store) ([]Day, error) {
	lines, err := store.ReadLines()
	if err != nil {
		return nil, err
	}

	recs := make([]record.Record, 0, len(lines))
	for i, line := range lines {
		r, err := record.Decode(line)
		if err != nil {
			logger.Warn("Skipping unreadable history line", "path", store.Path(), "line", i+1, "error", err)
			continue
		}
		recs = append(recs, r)
	}
	return Group(recs), nil
}

// Last returns at most n most recent days, oldest first.
func Last(days []Day, n int) []Day {
	if n <= 0 || n >= len(days) {
		return days
	}
	return days[len(days)-n:]
}
