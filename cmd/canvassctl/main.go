// canvassctl runs operator tasks against the canvassing database: schema
// migration, bootstrapping the first admin, and loading sample voters.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/political-canvas/canvass-api/internal/config"
	"github.com/political-canvas/canvass-api/internal/database"
	"github.com/political-canvas/canvass-api/internal/repository"
	"github.com/political-canvas/canvass-api/internal/services"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage(out)
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "migrate":
		return withDB(func(db *gorm.DB) error {
			return runMigrate(db, out)
		})
	case "create-admin":
		flagSet := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
		username := flagSet.String("username", "admin", "admin username")
		password := flagSet.String("password", "", "admin password (required)")
		if err := flagSet.Parse(rest); err != nil {
			return err
		}
		if *password == "" {
			return errors.New("--password is required")
		}
		return withDB(func(db *gorm.DB) error {
			return runCreateAdmin(db, *username, *password, out)
		})
	case "seed-voters":
		return withDB(func(db *gorm.DB) error {
			return runSeedVoters(db, out)
		})
	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `Usage: canvassctl <command> [flags]

Commands:
  migrate                                  create or update the schema
  create-admin --username U --password P   create an admin user
  seed-voters                              insert the sample voter roll

Database settings are read from the DB_* environment variables.
`)
}

func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.Connect(config.Load())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(db)
}

func runMigrate(db *gorm.DB, out io.Writer) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(out, "Schema up to date.")
	return nil
}

func runCreateAdmin(db *gorm.DB, username, password string, out io.Writer) error {
	auth := services.NewAuthService(repository.NewUserRepository(db), nil)
	user, err := auth.CreateUser(services.CreateUserInput{
		Username: username,
		Password: password,
		Role:     "admin",
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	fmt.Fprintf(out, "Admin user created: %s (id %d)\n", user.Username, user.ID)
	return nil
}
