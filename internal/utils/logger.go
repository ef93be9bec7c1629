package utils

import (
	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/sirupsen/logrus"
)

const (
	debug   = "debug"
	warning = "warning"
	info    = "info"
	error_  = "error"
	fatal   = "fatal"
)

// Log доступен и до InitLogger, чтобы тесты и пакеты без main не падали на nil
var Log = logrus.New()

func InitLogger(logLevel string) *logrus.Logger {
	Log = logrus.New()

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	switch logLevel {
	case debug:
		Log.SetLevel(logrus.DebugLevel)
	case warning, "warn":
		Log.SetLevel(logrus.WarnLevel)
	case info:
		Log.SetLevel(logrus.InfoLevel)
	case error_:
		Log.SetLevel(logrus.ErrorLevel)
	case fatal:
		Log.SetLevel(logrus.FatalLevel)
	default:
		Log.SetLevel(logrus.ErrorLevel)
	}

	return Log
}

// LogDownloadError пишет ошибку вместе с её категорией
func LogDownloadError(url string, err error) {
	category := downloaders.Classify(err)

	entry := Log.WithFields(logrus.Fields{
		"url":      url,
		"category": category.String(),
	})

	switch category {
	case downloaders.CategoryEmptyInput, downloaders.CategoryInvalidURL:
		entry.Debug(err)
	default:
		entry.Warn(err)
	}
}
