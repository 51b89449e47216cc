package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/app"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

func runUser(cfg app.Config, sub string, args []string, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("user "+sub, pflag.ContinueOnError)

	var in service.CreateUserInput
	var tokenMinutes int
	switch sub {
	case "add":
		flagSet.StringVar(&in.Username, "username", "", "username (required)")
		flagSet.StringVar(&in.Role, "role", "", "role name (required)")
		flagSet.StringVar(&in.Password, "password", "", "password (generated when omitted)")
		flagSet.StringVar(&in.FullName, "full-name", "", "display name")
		flagSet.StringVar(&in.Email, "email", "", "email address")
		flagSet.IntVar(&tokenMinutes, "token-minutes", 0, "per-user access token lifetime in minutes")
	case "update":
		flagSet.StringVar(&in.Username, "username", "", "username (required)")
		flagSet.StringVar(&in.Role, "role", "", "new role name")
		flagSet.StringVar(&in.FullName, "full-name", "", "display name")
		flagSet.StringVar(&in.Email, "email", "", "email address")
		flagSet.IntVar(&tokenMinutes, "token-minutes", 0, "per-user access token lifetime in minutes, 0 clears it")
	case "disable", "enable":
		flagSet.StringVar(&in.Username, "username", "", "username (required)")
	case "passwd":
		flagSet.StringVar(&in.Username, "username", "", "username (required)")
		flagSet.StringVar(&in.Password, "password", "", "new password (generated when omitted)")
	case "list":
	default:
		return fmt.Errorf("user: unknown subcommand %q", sub)
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if sub != "list" && in.Username == "" {
		return errors.New("--username is required")
	}
	if flagSet.Changed("token-minutes") {
		in.TokenExpireMinutes = &tokenMinutes
	}

	logger := app.NewLogger(cfg)
	users, db, err := app.NewUserService(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := slogx.WithContext(context.Background(), logger)

	switch sub {
	case "add":
		if in.Role == "" {
			return fmt.Errorf("--role is required (one of %v)", users.Registry.Roles())
		}
		u, generated, err := users.CreateUser(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "created %s (%s)\n", u.Username, u.Role)
		if generated != "" {
			fmt.Fprintf(stdout, "password: %s\n", generated)
		}

	case "update":
		upd := service.UpdateUserInput{Username: in.Username, TokenExpireMinutes: in.TokenExpireMinutes}
		if flagSet.Changed("role") {
			upd.Role = &in.Role
		}
		if flagSet.Changed("full-name") {
			upd.FullName = &in.FullName
		}
		if flagSet.Changed("email") {
			upd.Email = &in.Email
		}
		u, err := users.UpdateUser(ctx, upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "updated %s (%s)\n", u.Username, u.Role)

	case "disable", "enable":
		if err := users.SetDisabled(ctx, in.Username, sub == "disable"); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%sd %s\n", sub, in.Username)

	case "passwd":
		generated, err := users.SetPassword(ctx, in.Username, in.Password)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "password updated for %s\n", in.Username)
		if generated != "" {
			fmt.Fprintf(stdout, "password: %s\n", generated)
		}

	case "list":
		list, err := users.ListUsers(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "USERNAME\tROLE\tDISABLED\tEMAIL")
		for _, u := range list {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", u.Username, u.Role, u.Disabled, u.Email)
		}
		return tw.Flush()
	}

	return nil
}
