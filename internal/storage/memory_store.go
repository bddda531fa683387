package storage

import "strings"

// MemoryStore keeps lines in memory. Used by tests and dry runs.
type MemoryStore struct {
	Name  string
	Lines []string
	Err   error // returned by every operation when set
}

func NewMemoryStore(lines ...string) *MemoryStore {
	m := &MemoryStore{Name: "memory"}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			m.Lines = append(m.Lines, terminate(l))
		}
	}
	return m
}

func (m *MemoryStore) Path() string { return m.Name }

func (m *MemoryStore) Init() error { return m.Err }

func (m *MemoryStore) ReadLines() ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]string(nil), m.Lines...), nil
}

func (m *MemoryStore) WriteLines(lines []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Lines = m.Lines[:0]
	for _, l := range lines {
		m.Lines = append(m.Lines, terminate(l))
	}
	return nil
}

func (m *MemoryStore) AppendLines(lines []string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, l := range lines {
		m.Lines = append(m.Lines, terminate(l))
	}
	return nil
}
