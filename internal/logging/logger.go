package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/liftlog/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFileMaxSizeMB = 50
	defaultLogFileBackups   = 10
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// Console replaces stdout as the console destination. The stdio MCP
	// server points it to stderr since stdout carries the protocol.
	Console io.Writer

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{logrus.FieldKeyTime: "ts"},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(output(params))
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}
	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up")
}

func output(params LoggerSetupParams) io.Writer {
	console := params.Console
	if console == nil {
		console = os.Stdout
	}

	if params.LogFileName == "" {
		return console
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	if exists, err := pkg.PathExists(filepath.Dir(params.LogFileName), true); err != nil || !exists {
		logrus.Errorf("logs dir for [%s] not usable (exists: %t, err: %v), logging to console", params.LogFileName, exists, err)
		return console
	}

	fileLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    defaultLogFileMaxSizeMB,
		MaxBackups: defaultLogFileBackups,
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(console, fileLogger)
	}
	return fileLogger
}

// GetLevel parses a logrus level name, unknown names mean trace.
func GetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return lvl
}
