package main

import (
	"taskman/internal/config"
	"taskman/internal/logger"
	"taskman/internal/server"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	s, err := server.Init(cfg, log)
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("server initialization failed")
	}

	s.Run()
}
