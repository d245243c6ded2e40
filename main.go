package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nexpertia/marketplace-api/app"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
