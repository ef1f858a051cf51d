package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the probe logger. Output goes to stderr, so stdout only
// carries responses, and is copied to a rotated LogFile when one is set.
func newLogger(cfg *Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(level)

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return logger, nil
}

// exchangeLogger routes client log lines into logrus.
type exchangeLogger struct {
	logger logrus.FieldLogger
}

func (l exchangeLogger) Debug(message string, keyValuePairs ...interface{}) {
	l.logger.WithFields(toFields(keyValuePairs)).Debug(message)
}

func (l exchangeLogger) Error(message string, keyValuePairs ...interface{}) {
	l.logger.WithFields(toFields(keyValuePairs)).Error(message)
}

// toFields pairs up alternating keys and values. A trailing key without a
// value is kept with an empty value.
func toFields(keyValuePairs []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keyValuePairs)/2)
	for i := 0; i < len(keyValuePairs); i += 2 {
		key := fmt.Sprint(keyValuePairs[i])
		if i+1 < len(keyValuePairs) {
			fields[key] = keyValuePairs[i+1]
		} else {
			fields[key] = ""
		}
	}
	return fields
}
