// Package logger はアプリケーション全体で使うzapロガーを構築します。
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は環境とログレベルに応じたzapロガーを生成します。
// production ではJSON、それ以外ではコンソール形式で出力します。
func New(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// WithRequestID はリクエストIDを付与した子ロガーを返します。
func WithRequestID(log *zap.Logger, requestID string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	if requestID == "" {
		return log
	}
	return log.With(zap.String("request_id", requestID))
}

// Sync はバッファをフラッシュします。
func Sync(log *zap.Logger) {
	if log == nil {
		return
	}
	_ = log.Sync()
}
