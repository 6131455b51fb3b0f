package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/db"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
	gormstore "github.com/cidadeviva/edu-admissions/pkg/server/store/gorm"
)

// adminResetPasswordCmd represents the admin reset-password command
var adminResetPasswordCmd = &cobra.Command{
	Use:   "reset-password [email]",
	Short: "Reset an admin's password",
	Long: `Reset an admin's password.

A new random password is generated and printed to STDOUT. Existing
sessions are destroyed so the old credentials stop working everywhere.

Example:
  admissionsctl admin reset-password ana@cidadeviva.org`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		password, err := resetAdminPassword(email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Reset password for '%s'\n", email)
		fmt.Printf("New password: %s\n", password)
	},
}

func init() {
	adminCmd.AddCommand(adminResetPasswordCmd)
}

func resetAdminPassword(email string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	profiles := gormstore.NewProfilesStore(database)
	profile, err := profiles.GetByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return "", fmt.Errorf("no account with email %s", email)
		}
		return "", err
	}

	password, err := generatePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := profiles.UpdatePasswordHash(profile.ID, string(hash)); err != nil {
		return "", err
	}

	// Kill any sessions opened with the old password.
	if err := database.Exec(`DELETE FROM sessions WHERE profile_id = ?`, profile.ID).Error; err != nil {
		return "", err
	}

	audit.Log(audit.ProvisionEvent{
		Operation: audit.ProvisionResetPassword,
		ProfileID: profile.ID,
		Email:     email,
	})
	return password, nil
}
