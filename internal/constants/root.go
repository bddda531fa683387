package constants

const (
	AppName           = "daybook"
	DefaultConfigPath = "~/.config/daybook/config.toml"
	DefaultDataDir    = "~/.local/share/daybook"
	Version           = "v0.3.0"

	// DateFormat is the canonical date layout used in the line format (dd.mm.yyyy)
	DateFormat = "02.01.2006"

	// Date bounds accepted by the validator
	MinYear = 2016
	MaxYear = 2060

	// Fixed-width line layout: "dd.mm.yyyy + subject"
	DateWidth      = 10
	StatusOffset   = 11
	SubjectOffset  = 13
	SubjectMaxLen  = 75
	StatusDoneChar = '+'
	StatusOpenChar = '-'

	// Store file names inside the data directory
	DefaultEntryFile   = "today.txt"
	DefaultHistoryFile = "history.txt"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "history-"
	BackupFileSuffix = ".txt"

	// Lock constants
	LockfileName = "daybook.lock"
)
