package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = zap.NewNop()

func Init() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig = encoderCfg

	var err error
	Log, err = cfg.Build()
	if err != nil {
		log.Fatalf("Cannot create logger: %v", err)
	}
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
