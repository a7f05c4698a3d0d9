package constants

import "time"

const (
	AppName            = "stride"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/stride"
	DefaultDBName      = "stride.db"
	DefaultConfigName  = "config.yaml"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	BackupDirName        = "backups"
	BackupFilePrefix     = "stride-"
	BackupFileExtension  = ".db"
	BackupTimestampFmt   = "20060102-150405"
	MaxBackups           = 14
	BackupRetentionCount = MaxBackups
)

const (
	// DefaultRolloverHour is the local hour at which the app considers a new day to begin.
	DefaultRolloverHour = 4

	// DefaultResetPollInterval is how often the workout reset timer is checked.
	DefaultResetPollInterval = 60 * time.Second

	// UrgentWithinDays marks a todo urgent when its due date is at most this many days away.
	UrgentWithinDays = 2

	// StreakChartDays is the window of the habit completion chart.
	StreakChartDays = 30
)
