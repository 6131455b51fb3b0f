// Package main provides the admissions server and its administration CLI.
//
// The service backs the Cidade Viva Education admissions site: public
// application intake, the admin review area, and the audited evaluation
// workflow behind it.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/guard: Session issuance and authorization
//   - pkg/authenticator: Authentication mechanisms (password, OIDC)
//   - pkg/evaluation: The audited evaluation write path
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the admissionsctl CLI:
//
//	# Run database migrations
//	admissionsctl db migrate
//
//	# Create the first admin account
//	admissionsctl admin create ana@cidadeviva.org --name "Ana Souza"
//
//	# Start the server
//	export ADMISSIONS_SESSION_KEY=$(head -c 32 /dev/urandom | base64)
//	admissionsctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ADMISSIONS_SESSION_KEY: Secret for signing session tokens
//   - ADMISSIONS_CONFIG_PATH: Directory holding admissions.yml
//   - ADMISSIONS_AUDIT_ENABLED: Set to "false" to disable audit logging
//   - ADMISSIONS_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main
