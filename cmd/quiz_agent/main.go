// Package main provides the entry point for the quiz agent server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quiz_agent",
	Short: "Quiz Chain Solver",
	Long:  "Quiz agent renders quiz pages in a headless browser, works out each answer, submits it and follows the chain of quizzes until it ends or time runs out.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
