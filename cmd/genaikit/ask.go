package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"genaikit/internal/llm"
	"genaikit/internal/markdown"
	"genaikit/internal/prompt"
	"genaikit/internal/secrets"
)

var (
	askRole   string
	askTone   string
	askWords  int
	askSystem string
)

var askCmd = &cobra.Command{
	Use:   "ask <task...>",
	Short: "Send a structured task prompt to the chat model",
	Long: `Builds a task prompt following the PREPARE framework and sends it
to the configured Gemini model. The reply is rendered as Markdown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := cfg.LLM.APIKey
		if apiKey == "" {
			provider, err := secrets.Default()
			if err != nil {
				return err
			}
			apiKey, _ = provider.Get("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("no API key configured (set GEMINI_API_KEY or llm.api_key)")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetLLMTimeout())
		defer cancel()

		client, err := llm.NewClient(ctx, apiKey, cfg.LLM.Model, cfg.LLM.Temperature)
		if err != nil {
			return err
		}

		task := prompt.Prepare{
			Task:      strings.Join(args, " "),
			Role:      askRole,
			Tone:      askTone,
			WordLimit: askWords,
		}.Build()

		text, _, err := prompt.RunChat(ctx, client, prompt.ChatPrompt{System: askSystem}, nil, task)
		if err != nil {
			return err
		}

		renderer, err := markdown.New(os.Stdout)
		if err != nil {
			return err
		}
		if err := renderer.Show(text); err != nil {
			return err
		}

		if verbose {
			for _, attr := range llm.ModelAttributes(client) {
				fmt.Printf("%s: %s\n", attr.Name, attr.Value)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askRole, "role", "", "role the model should take")
	askCmd.Flags().StringVar(&askTone, "tone", "", "tone of the answer")
	askCmd.Flags().IntVar(&askWords, "words", 0, "word limit for the answer")
	askCmd.Flags().StringVar(&askSystem, "system", "", "system instruction")

	rootCmd.AddCommand(askCmd)
}
