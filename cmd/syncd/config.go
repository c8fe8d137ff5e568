package main

import "time"

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,required=true"`
	IngestDir        string        `env:"INGEST_DIR,required=true"`
	IngestInterval   time.Duration `env:"INGEST_INTERVAL,default=1s"`
	DispatchInterval time.Duration `env:"DISPATCH_INTERVAL,default=500ms"`
	MaxJobAttempts   int           `env:"MAX_JOB_ATTEMPTS,default=10"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}
