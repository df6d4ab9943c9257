package config

const (
	defaultLogFile            = "gutensync.log"
	defaultLogLevel           = "info"
	defaultLogFileMaxSize     = 20
	defaultLogFileMaxBackups  = 3
	defaultLogFileMaxAge      = 28
	defaultLogCompress        = false
	defaultPort               = 8080
	defaultHost               = "0.0.0.0"
	defaultData               = "/var/opt/gutensync"
	defaultCatalogURL         = ""
	defaultFeedURL            = "https://www.gutenberg.org/cache/epub/feeds/today.rss"
	defaultSeedCatalogFile    = "seed_catalog.csv"
	defaultSeedImportBelow    = 1000
	defaultDailySyncSchedule  = "30 6 * * *"
	defaultCatalogSchedule    = ""
	defaultFetchTimeout       = 120
	defaultSyncWorkers        = 1
)

// Why use mapstructure instead of json: viper unmarshals through mapstructure,
// json tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// CatalogURL is the remote catalog dump; empty means use the bundled seed file
	CatalogURL string `mapstructure:"catalog_url"`
	// FeedURL is the daily announcement feed
	FeedURL string `mapstructure:"feed_url"`
	// SeedCatalogFile is the bundled catalog, relative to Data unless absolute
	SeedCatalogFile string `mapstructure:"seed_catalog_file"`
	// SeedImportBelow triggers the initial catalog import when the store
	// holds fewer books than this
	SeedImportBelow int `mapstructure:"seed_import_below"`
	// DailySyncSchedule is a cron expression for the daily feed sync,
	// empty disables it
	DailySyncSchedule string `mapstructure:"daily_sync_schedule"`
	// CatalogSyncSchedule is a cron expression for the full catalog refresh,
	// empty disables it
	CatalogSyncSchedule string `mapstructure:"catalog_sync_schedule"`
	// FetchTimeout is the fetch timeout for remote sources, in seconds
	FetchTimeout int `mapstructure:"fetch_timeout"`
	// SyncWorkers is the size of the sync job pool
	SyncWorkers int `mapstructure:"sync_workers"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:             defaultLogFile,
		LogLevel:            defaultLogLevel,
		LogFileMaxSize:      defaultLogFileMaxSize,
		LogFileMaxBackups:   defaultLogFileMaxBackups,
		LogFileMaxAge:       defaultLogFileMaxAge,
		LogCompress:         defaultLogCompress,
		Port:                defaultPort,
		Host:                defaultHost,
		Data:                defaultData,
		CatalogURL:          defaultCatalogURL,
		FeedURL:             defaultFeedURL,
		SeedCatalogFile:     defaultSeedCatalogFile,
		SeedImportBelow:     defaultSeedImportBelow,
		DailySyncSchedule:   defaultDailySyncSchedule,
		CatalogSyncSchedule: defaultCatalogSchedule,
		FetchTimeout:        defaultFetchTimeout,
		SyncWorkers:         defaultSyncWorkers,
	}
	return Opts
}
