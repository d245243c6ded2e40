package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nexpertia/marketplace-api/config"
	"github.com/nexpertia/marketplace-api/database"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadENV(); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := database.StartGORM(cfg.Database, true, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := database.RunSeeds(store.DB(), cfg.Seed, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Msg("seeding completed")
}
