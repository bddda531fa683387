package storage

// Store is a line-oriented text store. Lines carry their "\n" terminator.
//
// Each call opens, fully reads or writes, and closes the underlying file.
// Running several daybook processes against the same store is not supported;
// see internal/lock.
type Store interface {
	// Init creates the store's parent directory and an empty store if none exists.
	Init() error

	ReadLines() ([]string, error)
	// WriteLines replaces the whole store.
	WriteLines(lines []string) error
	// AppendLines adds lines to the end of the store.
	AppendLines(lines []string) error

	Path() string
}
