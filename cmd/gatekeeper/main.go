// gatekeeper is the authentication gate service and its admin CLI.
//
// With no command, or with "serve", it runs the HTTP service configured from
// the environment. The other commands manage the user directory that the
// service reads and share the same AUTH_* configuration.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/app"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
)

const usage = `Usage: gatekeeper <command> [flags]

Commands:
  serve                      run the HTTP service (default)
  user add                   create a user
  user update                change a user's role or profile
  user disable|enable        toggle a user's disabled flag
  user passwd                replace a user's password
  user list                  list users
  hash-password              print an encoded password hash
  secret                     print a fresh random AUTH_SECRET_KEY

Configuration is read from AUTH_* environment variables.
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "serve" {
		serve()
		return
	}

	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

// run dispatches every command except serve. Results go to stdout, logs go
// to stderr.
func run(args []string, stdout io.Writer) error {
	cfg := app.LoadConfig()

	switch args[0] {
	case "user":
		if len(args) < 2 {
			return errors.New("user: missing subcommand (add, update, disable, enable, passwd, list)")
		}
		return runUser(cfg, args[1], args[2:], stdout)
	case "hash-password":
		return runHashPassword(cfg, args[1:], stdout)
	case "secret":
		return runSecret(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

func runHashPassword(cfg app.Config, args []string, stdout io.Writer) error {
	var password string
	flagSet := pflag.NewFlagSet("hash-password", pflag.ContinueOnError)
	flagSet.StringVar(&password, "password", "", "password to hash (generated when omitted)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	generated := password == ""
	if generated {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return err
		}
	}

	hasher, err := app.NewHasher(cfg)
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	if generated {
		fmt.Fprintf(stdout, "password: %s\n", password)
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func runSecret(stdout io.Writer) error {
	secret, err := cryptox.GenerateToken(app.MinSecretLength)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, secret)
	return nil
}
