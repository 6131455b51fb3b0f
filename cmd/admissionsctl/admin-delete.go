package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/db"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
	gormstore "github.com/cidadeviva/edu-admissions/pkg/server/store/gorm"
)

// adminDeleteCmd represents the admin delete command
var adminDeleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Delete an admin account",
	Long: `Delete an admin account.

Deleting the profile cascades to its sessions, so any outstanding
tokens stop working immediately.

Example:
  admissionsctl admin delete ana@cidadeviva.org`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		if err := deleteAdmin(email); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete admin: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Deleted admin account '%s'\n", email)
	},
}

func init() {
	adminCmd.AddCommand(adminDeleteCmd)
}

func deleteAdmin(email string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	profiles := gormstore.NewProfilesStore(database)
	profile, err := profiles.GetByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return err
	}
	if err := profiles.Delete(profile.ID); err != nil {
		return err
	}

	audit.Log(audit.ProvisionEvent{
		Operation: audit.ProvisionDelete,
		ProfileID: profile.ID,
		Email:     email,
	})
	return nil
}
