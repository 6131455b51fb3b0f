package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cidadeviva/edu-admissions/pkg/db"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/roster"
	gormstore "github.com/cidadeviva/edu-admissions/pkg/server/store/gorm"
)

// rosterCmd represents the roster command
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the staff roster",
	Long:  `Sync admin profiles from the YAML staff roster.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'roster' requires a subcommand (sync, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// rosterSyncCmd represents the roster sync command
var rosterSyncCmd = &cobra.Command{
	Use:   "sync <file>",
	Short: "Sync admin profiles from a roster file",
	Long: `Sync admin profiles from a roster file.

Every roster entry is upserted as a profile with the listed role
(default admin). Profiles absent from the roster are left untouched;
the roster grants access, it never revokes it. Accounts created this
way carry no password until one is set with admin reset-password, or
the admin signs in through OIDC.

Example:
  admissionsctl roster sync /etc/admissions/roster.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		if err := syncRoster(database, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync roster: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterSyncCmd)
}

func newProfileID() string {
	return uuid.NewString()
}

func syncRoster(database *gorm.DB, filename string) error {
	r, err := roster.Load(filename)
	if err != nil {
		return err
	}

	profiles := gormstore.NewProfilesStore(database)
	for _, entry := range r.Admins {
		role := entry.Role
		if role == "" {
			role = model.RoleAdmin
		}
		err := profiles.Upsert(&model.Profile{
			ID:       newProfileID(),
			Email:    entry.Email,
			FullName: entry.FullName,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert %s: %w", entry.Email, err)
		}
	}

	fmt.Printf("Synced %d roster entries\n", len(r.Admins))
	return nil
}
