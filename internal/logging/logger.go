package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/stravastats/pkg"
)

const logFileMaxSizeMB = 50

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// 0 keeps every rotated file
	LogMaxBackups int
	LogMaxAgeDays int

	Environment      string
	Release          string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. A failing sentry setup is returned,
// but logging is set up regardless.
func Setup(params LoggerSetupParams) error {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(ParseLevel(params.LogLevel))
	logrus.SetOutput(logOutput(params))

	if !params.SentryEnabled {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.SentryDSN,
		Environment:      params.Environment,
		Release:          params.Release,
		ServerName:       params.SentryServerName,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up")
	return nil
}

func logOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		return os.Stdout
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: params.LogMaxBackups,
		MaxAge:     params.LogMaxAgeDays,
		LocalTime:  false, // UTC in rotated file names
		Compress:   true,
	}
	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, rotated)
	}
	return rotated
}

// ParseLevel parses a logrus level name, case-insensitive. Unknown names fall back to info.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
