package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/authenticator/authn"
	"github.com/cidadeviva/edu-admissions/pkg/authenticator/authn_oidc"
	"github.com/cidadeviva/edu-admissions/pkg/config"
	"github.com/cidadeviva/edu-admissions/pkg/db"
	"github.com/cidadeviva/edu-admissions/pkg/evaluation"
	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/notify"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/endpoints"
	gormstore "github.com/cidadeviva/edu-admissions/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the admissions application server",
	Long: `Run the admissions application server.

To run the server requires the environment variables ADMISSIONS_SESSION_KEY
and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		if os.Getenv("ADMISSIONS_SESSION_KEY") == "" {
			fmt.Fprintln(os.Stderr, "ADMISSIONS_SESSION_KEY environment variable is required")
			os.Exit(1)
		}
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		profiles := gormstore.NewProfilesStore(database)
		sessions := gormstore.NewSessionsStore(database)
		applications := gormstore.NewApplicationsStore(database)
		reviews := gormstore.NewReviewsStore(database)
		health := gormstore.NewHealthStore(database)

		// Register the password authenticator
		passwordAuth := authn.NewPasswordAuthenticator(profiles)
		authenticator.DefaultRegistry.Register(passwordAuth)
		_ = authenticator.DefaultRegistry.Enable("authn")

		if cfg.OIDCIssuer != "" {
			oidcAuth, err := authn_oidc.NewOIDCAuthenticator(
				context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID, profiles)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to set up OIDC authenticator:", err)
				os.Exit(1)
			}
			authenticator.DefaultRegistry.Register(oidcAuth)
			_ = authenticator.DefaultRegistry.Enable("authn-oidc")
		}

		sessionGuard := guard.NewGuard(
			passwordAuth, sessions, profiles,
			[]byte(cfg.SessionSigningKey), cfg.SessionTTL(),
		)
		writer := evaluation.NewWriter(applications, reviews)

		var mailer notify.Mailer = notify.NoopMailer{}
		if cfg.MailAPIEndpoint != "" {
			mailer = notify.NewAPIMailer(cfg.MailAPIEndpoint, cfg.MailAPIKey, cfg.MailFrom)
		} else {
			log.Println("No mail provider configured; outbound mail is disabled")
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(
			database, cfg, sessionGuard, writer, mailer,
			profiles, sessions, applications, reviews, health,
			host, port,
		)
		s.Authenticators = authenticator.DefaultRegistry

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
