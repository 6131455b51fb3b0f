package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admissionsctl",
	Short: "Cidade Viva Education admissions server",
	Long:  `Run and administer the Cidade Viva Education admissions service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
