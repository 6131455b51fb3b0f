package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/config"
	"github.com/cidadeviva/edu-admissions/pkg/db"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/notify"
	gormstore "github.com/cidadeviva/edu-admissions/pkg/server/store/gorm"
)

// adminCreateCmd represents the admin create command
var adminCreateCmd = &cobra.Command{
	Use:   "create [email]",
	Short: "Create an admin account",
	Long: `Create an admin account.

A random initial password is generated and printed to STDOUT. With
--send-mail and a configured mail provider, a welcome message carrying
the password is sent to the new admin instead.

Example:
  admissionsctl admin create ana@cidadeviva.org --name "Ana Souza"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		name, _ := cmd.Flags().GetString("name")
		sendMail, _ := cmd.Flags().GetBool("send-mail")

		password, err := createAdmin(email, name, sendMail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created admin account '%s'\n", email)
		if !sendMail {
			fmt.Printf("Initial password: %s\n", password)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	adminCreateCmd.Flags().StringP("name", "n", "", "Display name for the admin")
	adminCreateCmd.Flags().Bool("send-mail", false, "Mail the initial password instead of printing it")
}

func createAdmin(email, name string, sendMail bool) (password string, err error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	password, err = generatePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &model.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     name,
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
	}

	profiles := gormstore.NewProfilesStore(database)
	if err := profiles.Create(profile); err != nil {
		return "", err
	}

	audit.Log(audit.ProvisionEvent{
		Operation: audit.ProvisionCreate,
		ProfileID: profile.ID,
		Email:     email,
	})

	if sendMail {
		cfg := config.Get()
		if cfg.MailAPIEndpoint == "" {
			return "", fmt.Errorf("--send-mail requires a configured mail provider")
		}
		mailer := notify.NewAPIMailer(cfg.MailAPIEndpoint, cfg.MailAPIKey, cfg.MailFrom)
		err = mailer.Send(context.Background(), notify.Message{
			To:      email,
			Subject: "Your admissions account",
			Body: fmt.Sprintf("Hello %s,\n\nYour admin account is ready.\n\nInitial password: `%s`\n\n**Change it after your first sign-in.**",
				name, password),
		})
		if err != nil {
			return "", fmt.Errorf("account created but mail failed: %w", err)
		}
	}

	return password, nil
}

// generatePassword returns a random URL-safe password
func generatePassword() (string, error) {
	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
