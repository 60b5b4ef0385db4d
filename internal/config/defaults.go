package config

const (
	defaultWorkDir           = "~/.local/share/asrscore/work"
	defaultCacheDir          = "~/.local/share/asrscore/cache"
	defaultLogDir            = "~/.local/share/asrscore/logs"
	defaultUnknownToken      = "UNK"
	defaultMaxHypWords       = 512
	defaultMaxHypTokenChars  = 64
	defaultEngine            = "builtin"
	defaultScliteBinary      = "sclite"
	defaultHypColumn         = "raw_hypos"
	defaultScliteTimeout     = 600
	defaultSpeechStartColumn = "mfa_speech_start"
	defaultFinalEvent        = "last_partial"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// EngineBuiltin and EngineSclite are the supported alignment backends.
const (
	EngineBuiltin = "builtin"
	EngineSclite  = "sclite"
)

// FinalEventLastPartial and FinalEventExplicit are the supported TTLT endpoints.
const (
	FinalEventLastPartial = "last_partial"
	FinalEventExplicit    = "explicit_final"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Normalizer: Normalizer{
			ParenPrefixes:    []string{"cs:", "assistant:"},
			UnknownToken:     defaultUnknownToken,
			MaxHypWords:      defaultMaxHypWords,
			MaxHypTokenChars: defaultMaxHypTokenChars,
		},
		Scorer: Scorer{
			Engine:        defaultEngine,
			HypColumn:     defaultHypColumn,
			ClipErrors:    true,
			ScliteBinary:  defaultScliteBinary,
			ScliteTimeout: defaultScliteTimeout,
		},
		Latency: Latency{
			SpeechStartColumn: defaultSpeechStartColumn,
			FinalEvent:        defaultFinalEvent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
