package logger

import (
	"go.uber.org/zap"
)

// Log defaults to a nop logger so library code and tests can log without
// ceremony; Init swaps in the production logger at process start.
var Log = zap.NewNop().Sugar()

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
