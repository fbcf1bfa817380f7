package internal

// Flag describes one setting. Name is the command-line flag, left empty for
// settings that only come from the config file or the environment.
type Flag struct {
	Key     string
	Name    string
	Env     string
	Usage   string
	Default interface{}
}

// Settings shared by all commands.
var (
	ConfigFlag = Flag{
		Key:     "config",
		Name:    "config",
		Usage:   "path to the JSON config file",
		Default: DefaultConfigFile,
	}
	LogLevelFlag = Flag{
		Key:     "log_level",
		Name:    "log-level",
		Env:     "LOG_LEVEL",
		Usage:   "log level: trace, debug, info, warn or error",
		Default: "error",
	}
	ServerIPFlag = Flag{
		Key:     "server_ip",
		Usage:   "server IP address",
		Default: "127.0.0.1",
	}
	ServerPortFlag = Flag{
		Key:     "server_port",
		Usage:   "server TCP port",
		Default: 0,
	}
)

// Client settings.
var (
	PageSizeFlag = Flag{
		Key:     "k",
		Name:    "k",
		Env:     "K",
		Usage:   "number of words requested per page",
		Default: 1,
	}
	OffsetFlag = Flag{
		Key:     "p",
		Name:    "p",
		Env:     "P",
		Usage:   "offset of the first requested word",
		Default: 0,
	}
	QuietFlag = Flag{
		Key:     "quiet",
		Name:    "quiet",
		Usage:   "only print the elapsed time",
		Default: false,
	}
)

// Server settings.
var (
	FilenameFlag = Flag{
		Key:     "filename",
		Usage:   "path of the comma-separated word file",
		Default: "",
	}
	MaxConnsFlag = Flag{
		Key:     "max_conns",
		Name:    "max-conns",
		Env:     "MAX_CONNS",
		Usage:   "maximum number of connections served at once, 0 for no limit",
		Default: 0,
	}
	HealthPortFlag = Flag{
		Key:     "health_port",
		Name:    "health-port",
		Env:     "HEALTH_PORT",
		Usage:   "port of the gRPC health service, 0 to disable",
		Default: 0,
	}
)

// Bench settings.
var (
	BenchPageSizesFlag = Flag{
		Key:     "bench_ks",
		Name:    "ks",
		Usage:   "page sizes to measure",
		Default: []int{1, 2, 5, 10, 20, 50, 100, 200},
	}
	BenchRunsFlag = Flag{
		Key:     "bench_runs",
		Name:    "runs",
		Usage:   "sessions per page size",
		Default: 5,
	}
	BenchOutFlag = Flag{
		Key:     "bench_out",
		Name:    "out",
		Usage:   "CSV file the results are written to",
		Default: "results.csv",
	}
	BenchDBFlag = Flag{
		Key:     "bench_db",
		Name:    "db",
		Usage:   "optional SQLite database the results are also stored in",
		Default: "",
	}
)
