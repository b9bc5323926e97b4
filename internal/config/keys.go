package config

// Configuration keys, written as "section.key"
const (
	// Log destination
	KeyLogFile    = "log.file"
	KeyLogConsole = "log.console"
	KeyLogDebug   = "log.debug"

	// Charset conversion
	KeyLegacyCharset    = "charset.legacy"
	KeyToLegacyRatio    = "charset.to_legacy_ratio"
	KeyToUniversalRatio = "charset.to_universal_ratio"

	// Directory creation
	KeyDirMode = "dir.mode"
)

// Default values for configuration keys
var Defaults = map[string]string{
	KeyLogFile:          "d3l.log",
	KeyLogConsole:       "false",
	KeyLogDebug:         "false",
	KeyLegacyCharset:    "GBK",
	KeyToLegacyRatio:    "0",
	KeyToUniversalRatio: "0",
	KeyDirMode:          "0755",
}
