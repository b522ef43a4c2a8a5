package utils

import "go.uber.org/zap"

// InitLogger builds the application logger. Development mode uses the
// human-readable console encoder.
func InitLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
