package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/db"
	"github.com/robalobadob/hangman/internal/words"
)

// loadCorpus picks the corpus source: the SQLite database when
// WORDS_DB_PATH is set, else WORDS_FILE, else the embedded movie list.
func loadCorpus(ctx context.Context, cfg *config.App) (*words.Corpus, error) {
	switch {
	case cfg.Words.DBPath != "":
		sqlDB, err := db.OpenAndMigrate(ctx, cfg.Words.DBPath)
		if err != nil {
			return nil, err
		}
		defer sqlDB.Close()
		return words.NewRepository(sqlDB).Load(ctx)
	case cfg.Words.File != "":
		return words.LoadFile(cfg.Words.File)
	default:
		return words.LoadDefault()
	}
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Inspect and manage the word corpus",
	}
	cmd.AddCommand(newWordsStatsCmd(), newWordsImportCmd())
	return cmd
}

func newWordsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print corpus size and length distribution as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			corpus, err := loadCorpus(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("load word corpus: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(corpus.Stats())
		},
	}
}

func newWordsImportCmd() *cobra.Command {
	var file string
	var defaults bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import words into the SQLite corpus (WORDS_DB_PATH)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if cfg.Words.DBPath == "" {
				return errors.New("WORDS_DB_PATH must be set")
			}

			var list []string
			switch {
			case file != "":
				list, err = words.ReadFile(file)
			case defaults:
				var c *words.Corpus
				c, err = words.LoadDefault()
				if c != nil {
					list = c.Words()
				}
			default:
				return errors.New("nothing to import: pass --file or --defaults")
			}
			if err != nil {
				return err
			}

			sqlDB, err := db.OpenAndMigrate(cmd.Context(), cfg.Words.DBPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			added, err := words.NewRepository(sqlDB).Import(cmd.Context(), list)
			if err != nil {
				return err
			}
			logger.Info().Int("read", len(list)).Int("added", added).Str("db", cfg.Words.DBPath).Msg("words imported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "word file, one entry per line")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "import the embedded movie list")
	return cmd
}
