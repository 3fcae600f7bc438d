// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger and returns it.
// Development uses a human-readable text format at debug level;
// every other environment logs JSON at info level.
func Init(env string) *logrus.Logger {
	l := logrus.StandardLogger()
	l.SetOutput(os.Stdout)
	if env == "development" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	l.WithFields(logrus.Fields{"app": "lifetrail", "env": env}).Info("logger initialized")
	return l
}
