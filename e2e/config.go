package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BADGER_FILEPATH points the scenario at an existing database; empty
	// means a throwaway directory per test
	BadgerFilepath string `envconfig:"BADGER_FILEPATH"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	// E2E_DISPATCH_ROUNDS bounds how many drain passes a scenario runs
	DispatchRounds int `envconfig:"E2E_DISPATCH_ROUNDS" default:"5"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
