// Command apiuser grants or revokes an account's right to create users
// through the REST API and can mint API tokens for it.
//
//	apiuser [-enabled=true|false] [-accounts-limit=N] [-issue-token] <username>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/services"
	"gorm.io/gorm"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), database.DB, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "apiuser:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("apiuser", flag.ContinueOnError)
	fs.SetOutput(out)
	enabledFlag := fs.String("enabled", "true", "grant the account the right to create users via the REST API")
	limit := fs.Int("accounts-limit", services.DefaultAccountsLimit, "accounts the API consumer may create per minute")
	issueToken := fs.Bool("issue-token", false, "mint a new API token and print its key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("username is required")
	}
	username := fs.Arg(0)

	enabled, err := strconv.ParseBool(*enabledFlag)
	if err != nil {
		return fmt.Errorf("unknown value for -enabled: %q", *enabledFlag)
	}

	access := services.NewAPIAccessService(db)
	if enabled {
		profile, err := access.Enable(ctx, username, *limit)
		if err != nil {
			return describe(username, err)
		}
		fmt.Fprintf(out, "Successfully ENABLED REST API user creation for %q (limit %d per minute)\n",
			username, profile.APIUserThroughputLimitPerMin)
	} else {
		if _, err := access.Disable(ctx, username); err != nil {
			return describe(username, err)
		}
		fmt.Fprintf(out, "Successfully DISABLED REST API user creation for %q\n", username)
	}

	if *issueToken {
		key, _, err := access.IssueToken(ctx, username)
		if err != nil {
			return describe(username, err)
		}
		fmt.Fprintf(out, "API key (shown once): %s\n", key)
	}
	return nil
}

func describe(username string, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fmt.Errorf("user profile for %q does not exist", username)
	case errors.Is(err, services.ErrInvalidLimit):
		return errors.New("invalid value for -accounts-limit")
	default:
		return err
	}
}
