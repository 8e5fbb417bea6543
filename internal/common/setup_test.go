package common

import (
	"testing"

	"go.uber.org/zap"
)

func TestInitializeLoggerInstallsGlobal(t *testing.T) {
	previous := zap.L()
	defer zap.ReplaceGlobals(previous)

	logger, cleanup := InitializeLogger()
	defer cleanup()

	if zap.L() != logger {
		t.Fatalf("Expected zap.L() to return the initialized logger")
	}
	if !zap.L().Core().Enabled(zap.InfoLevel) {
		t.Errorf("Expected the global logger to write info and above")
	}
}
