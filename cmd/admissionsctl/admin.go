package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
	Long:  `Create, delete and reset passwords for admin accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'admin' requires a subcommand (create, delete, reset-password)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
}
