package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/logging"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("hangman exited")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hangman",
		Short:         "Hangman game server (movie edition)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newWordsCmd())
	return root
}

// setup loads configuration and installs the process-wide logger.
func setup() (*config.App, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	log.Logger = logger
	return cfg, logger, nil
}
