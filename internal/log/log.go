// Package log holds the process-wide zap logger used by carbonchart.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init builds the package logger. Debug selects zap's development config
// (console encoder, debug level); otherwise the production JSON config is used.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	base = l
	sugar = l.Sugar()
	return nil
}

func ensure() {
	if sugar == nil {
		base, _ = zap.NewProduction(zap.AddCallerSkip(1))
		sugar = base.Sugar()
	}
}

// GetZapLogger returns the unsugared logger, for bridges such as gorm's logger.
func GetZapLogger() *zap.Logger {
	ensure()
	return base
}

// GetSugaredLogger returns the sugared logger handed to components.
func GetSugaredLogger() *zap.SugaredLogger {
	ensure()
	return sugar
}

// Sync flushes buffered entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func Debugw(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Infow(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	ensure()
	sugar.Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	ensure()
	sugar.Fatalf(template, args...)
	os.Exit(1)
}
