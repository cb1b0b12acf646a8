package testutil

import (
	"io"
	"time"

	"nearest-blood-locator/config"

	"github.com/sirupsen/logrus"
)

const TestJWTSecret = "test-secret-key-for-blood-locator"

func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Port: "0", Env: "test"},
		JWT: config.JWTConfig{Secret: TestJWTSecret, AccessExpiry: time.Hour},
	}
}

// NopLogger discards every entry.
func NopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
