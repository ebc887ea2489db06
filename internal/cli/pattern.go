package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/scoring"
)

// NewPatternCmd prints the test pattern of a quiz.
func NewPatternCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pattern <quiz-id>",
		Short: "Show the section layout and marking scheme of a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			loader, closeLoader, err := buildLoader(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeLoader()

			service := buildService(cfg, loader, nil)
			pattern, err := service.Pattern(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printPattern(cmd.OutOrStdout(), pattern)
			return nil
		},
	}
}

func printPattern(w io.Writer, p scoring.Pattern) {
	fmt.Fprintf(w, "%-36s %9s %7s\n", "Section", "Questions", "Marks")
	for _, sec := range p.Sections {
		fmt.Fprintf(w, "%-36s %9d %7g\n", sec.Name, sec.Questions, sec.Marks)
	}
	fmt.Fprintf(w, "%-36s %9d %7g\n", "Total", p.TotalQuestions, p.TotalMarks)
	fmt.Fprintf(w, "\nTime: %d minutes, %g marks per question, -%g per wrong answer\n",
		p.TimeMinutes, p.MarksPerQuestion, p.NegativeMarking)
}
