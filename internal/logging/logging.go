package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func newFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}
}

// SetupLogging returns the JSON logger used by request and pipeline logs and
// gives the package-level logrus logger the same format and level.
func SetupLogging(level logrus.Level) *logrus.Logger {
	logger := logrus.Logger{
		Formatter: newFormatter(),
		Out:       os.Stdout,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}

	logrus.SetFormatter(newFormatter())
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(level)

	return &logger
}
