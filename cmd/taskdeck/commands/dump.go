package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benvon/taskdeck/internal/render"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
)

// maxDumpBytes caps how much stdin a brain dump reads
const maxDumpBytes = 1 << 20

// NewDumpCmd creates the dump command
func NewDumpCmd(flags *globalFlags) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "dump [text...]",
		Short: "Turn free text into tasks with the AI parser",
		Long:  "Send free text to the AI parser and print the extracted tasks. Reads stdin when no text is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxDumpBytes))
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(raw)
			}

			s, err := newSession(cmd.Context(), cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.close()

			b := views.NewBrainDump(s.client, s.notifier(), s.logger)
			b.SetText(text)
			if err := b.Parse(cmd.Context()); err != nil {
				if errors.Is(err, views.ErrEmptyText) {
					return nil
				}
				return fmt.Errorf("failed to parse text: %w", err)
			}

			cards := render.NewCandidateCards(b.Candidates())
			fmt.Fprintf(s.out, "📝 Extracted Tasks (%d)\n", len(cards))
			for _, c := range cards {
				fmt.Fprintln(s.out, render.Card(c, false))
			}

			if !save || len(cards) == 0 {
				return nil
			}
			saved, err := b.SaveAll(cmd.Context())
			fmt.Fprintf(s.out, "Saved %d of %d tasks\n", saved, len(cards))
			if err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save every extracted task")

	return cmd
}
