package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/excel"
	"timed-quiz-service/internal/infra/file"
	"timed-quiz-service/internal/infra/memory"
)

type quizSource interface {
	memory.QuizLoader
	QuizIDs() ([]string, error)
}

// NewImportCmd copies quizzes from a workbook or a YAML directory into the
// configured database.
func NewImportCmd(configPath *string) *cobra.Command {
	var fromExcel, fromDir string
	cmd := &cobra.Command{
		Use:   "import [quiz-id...]",
		Short: "Import quizzes from an Excel workbook or YAML directory into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			var source quizSource
			switch {
			case fromExcel != "":
				source = excel.NewQuizLoader(fromExcel)
			case fromDir != "":
				source = file.NewQuizLoader(fromDir)
			default:
				return fmt.Errorf("one of --excel or --dir is required")
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL != "" {
				if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
					return err
				}
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("no database configured (postgres.url or sqlite.path)")
			}
			defer closeStore()

			return importQuizzes(cmd.Context(), source, store, args, sessionConfig(cfg).Sections)
		},
	}
	cmd.Flags().StringVar(&fromExcel, "excel", "", "workbook with one sheet per quiz")
	cmd.Flags().StringVar(&fromDir, "dir", "", "directory of {quiz-id}.yaml files")
	return cmd
}

func importQuizzes(ctx context.Context, source quizSource, store quizStore, ids []string, fallback []domain.SectionDefinition) error {
	if len(ids) == 0 {
		var err error
		if ids, err = source.QuizIDs(); err != nil {
			return err
		}
	}
	for _, id := range ids {
		quiz, err := source.LoadQuiz(ctx, id)
		if err != nil {
			return fmt.Errorf("read %s: %w", id, err)
		}
		defs := quiz.Sections
		if len(defs) == 0 {
			defs = fallback
		}
		if err := domain.Validate(quiz.Questions, defs); err != nil {
			return fmt.Errorf("quiz %s: %w", id, err)
		}
		if err := store.SaveQuiz(ctx, quiz); err != nil {
			return err
		}
		log.Printf("imported quiz %s (%d questions)", id, len(quiz.Questions))
	}
	return nil
}

