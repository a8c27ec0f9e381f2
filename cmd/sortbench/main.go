package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/rlaau/pmsort/internal/logutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logutil.Error("sortbench failed", zap.Error(err))
		logutil.Sync()
		os.Exit(1)
	}
	logutil.Sync()
}
