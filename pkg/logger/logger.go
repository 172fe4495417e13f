package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/batchcollector/pkg/settings"
)

// New builds a JSON logger writing to stdout and, when FileLogName is set,
// to a size-rotated file.
func New(cfg settings.Logger) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}

	return zap.New(
		zapcore.NewCore(newEncoder(), newWriteSyncer(cfg), level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func newWriteSyncer(cfg settings.Logger) zapcore.WriteSyncer {
	stdout := zapcore.AddSync(os.Stdout)
	if cfg.FileLogName == "" {
		return stdout
	}

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
	return zapcore.NewMultiWriteSyncer(stdout, file)
}
