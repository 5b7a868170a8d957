package cmd

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"apicheck.dev/pkg/apicheck/internal/adapter"
	"apicheck.dev/pkg/apicheck/internal/controller"
	"apicheck.dev/pkg/apicheck/internal/domain"
	m "apicheck.dev/pkg/apicheck/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "apicheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	debugFlagName          = "debug"
	logFileFlagName        = "log-file"
	formatFlagName         = "format"
	interactiveFlagName    = "interactive"
	specURLFlagName        = "spec-url"
	lesserVersionFlagName  = "lesser-ver"
	greaterVersionFlagName = "greater-ver"
	yamlPathFlagName       = "yaml-path"
	fileExtensionsFlagName = "file-extensions"
	matchFlagName          = "match"
	prettyFlagName         = "pretty"
	includeCoreFlagName    = "include-core"
	failFlagName           = "fail"

	outputFormatKey      = "output.format"
	outputInteractiveKey = "output.interactive"
	outputPrettyKey      = "output.pretty"
	specURLTemplateKey   = "spec.url_template"
	specTimeoutKey       = "spec.timeout"
	scanPathKey          = "scan.path"
	scanPatternsKey      = "scan.patterns"
	scanMatchKey         = "scan.match"
	scanIncludeCoreKey   = "scan.include_core"
	scanFailKey          = "scan.fail"

	defaultOutputFormat = string(controller.FormatTable)
	defaultScanMatch    = string(m.MatchKind)
	defaultScanFail     = true

	envPrefix = "APICHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFormatKey, defaultOutputFormat)
	viper.SetDefault(outputInteractiveKey, false)
	viper.SetDefault(outputPrettyKey, false)
	viper.SetDefault(specURLTemplateKey, adapter.DefaultSpecURLTemplate)
	viper.SetDefault(specTimeoutKey, int64(adapter.DefaultSpecTimeout.Seconds()))
	viper.SetDefault(scanPathKey, "")
	viper.SetDefault(scanPatternsKey, domain.DefaultFilePatterns)
	viper.SetDefault(scanMatchKey, defaultScanMatch)
	viper.SetDefault(scanIncludeCoreKey, false)
	viper.SetDefault(scanFailKey, defaultScanFail)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, "")
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, false)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Debug("config file not loaded", "file", configFileName, "error", err)
		}
	}
}

// specTimeout returns the HTTP timeout for spec downloads. The config value is in seconds.
func specTimeout() time.Duration {
	seconds := viper.GetInt64(specTimeoutKey)
	if seconds <= 0 {
		return adapter.DefaultSpecTimeout
	}

	return time.Duration(seconds) * time.Second
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Records go to w, and additionally to a rotating file when logPath is set.
// The level is Debug when verbose, otherwise log.level (Info by default).
func configureLogger(w io.Writer, logPath string, verbose bool) {
	logLevel := slog.LevelDebug
	if !verbose {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	if strings.TrimSpace(logPath) != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    viper.GetInt(logMaxSizeKey),
			MaxBackups: viper.GetInt(logMaxBackupsKey),
			MaxAge:     viper.GetInt(logMaxAgeKey),
			Compress:   viper.GetBool(logCompressKey),
		})
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
