package config

const (
	defaultLibraryDir       = "~/books"
	defaultLogDir           = "~/.local/share/bindery/logs"
	defaultProcessorBinary  = "reader3"
	defaultScanExtension    = ".epub"
	defaultMarkerSuffix     = "_data"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Processor: Processor{
			Binary: defaultProcessorBinary,
		},
		Server: Server{
			ExecHandoff: true,
		},
		Scan: Scan{
			Extension:    defaultScanExtension,
			MarkerSuffix: defaultMarkerSuffix,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
