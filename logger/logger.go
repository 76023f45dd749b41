package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the global logger. Call once from main before anything that
// logs; Sync on shutdown.
func Init() {
	var err error
	if os.Getenv("ENV") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func L() *zap.Logger {
	if log == nil {
		Init()
	}
	return log
}

func Info(msg string, fields ...zapcore.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { L().Error(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { L().Fatal(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { L().Debug(msg, fields...) }
