package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/config"
	"github.com/hablemosbien/bookforge/internal/home"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the bookforge home directory",
	Long: `Create the bookforge home directory and a default config file.

The config file documents every setting; edit it and set the
GOOGLE_API_KEY environment variable before generating.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() {
			fmt.Printf("config already exists: %s\n", h.ConfigPath())
			return nil
		}

		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", h.ConfigPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
