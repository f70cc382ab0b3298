package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the extraction prompt sent as the system message",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", llm.PromptVersion, llm.ExtractionPrompt)
			return err
		},
	}
}
