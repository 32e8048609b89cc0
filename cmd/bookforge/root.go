package main

import (
	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "bookforge",
	Short: "Form-driven book generator producing .docx manuscripts",
	Long: `Bookforge turns a short description of a book (topic, audience,
language, chapter count) into a complete, formatted .docx manuscript.

Each section is generated through the Gemini API, cleaned of markdown
artifacts and provider boilerplate, and assembled into a book with
language-aware headings, a title page, and page-numbered output.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.bookforge/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "bookforge home directory (default: ~/.bookforge)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
