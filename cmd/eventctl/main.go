// Command eventctl is a command-line client for the auth and event services.
//
// It keeps the caller's token in a session file between runs:
//
//	eventctl login --email ada@example.com --password secret
//	eventctl create --title "Go meetup" --date 2026-11-05T18:00:00Z --location Istanbul
//	eventctl logout
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/eventhub/platform/internal/client"
	"github.com/eventhub/platform/internal/session"
	"github.com/eventhub/platform/pkg/logger"
)

const usage = `usage: eventctl [global flags] <command> [args]

commands:
  register   create an account and log in
  login      log in and store the session
  logout     forget the stored session
  whoami     show the logged in user
  profile    show or update your profile
  events     list events
  event      show one event: event <id>
  comments   list an event's comments: comments <id>
  create     create an event
  delete     delete an event: delete <id>
  comment    comment on an event: comment <id> <text>
  join       join an event: join <id>
  leave      leave an event: leave <id>

global flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "eventctl: %s (%d)\n", apiErr.Message, apiErr.Code)
		} else {
			fmt.Fprintf(os.Stderr, "eventctl: %v\n", err)
		}
		os.Exit(1)
	}
}

// app is what every command gets.
type app struct {
	api   *client.Client
	store *session.Store
	sess  *session.Session
	out   io.Writer
	log   zerolog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := pflag.NewFlagSet("eventctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	authURL := global.String("auth-url", envOr("EVENTHUB_AUTH_URL", "http://localhost:3001"), "auth service base URL")
	eventURL := global.String("event-url", envOr("EVENTHUB_EVENT_URL", "http://localhost:3002"), "event service base URL")
	sessionPath := global.String("session", session.DefaultPath(), "session file")
	logLevel := global.String("log-level", "warn", "log level for diagnostics on stderr")
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}

	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return pflag.ErrHelp
	}

	lg := logger.Init(logger.Options{Level: *logLevel, Pretty: true, Service: "eventctl", Output: stderr})

	a := &app{
		store: session.NewStore(*sessionPath),
		out:   stdout,
		log:   lg,
	}

	sess, err := a.store.Restore()
	if err != nil {
		return err
	}
	a.sess = sess

	var opts []client.Option
	if sess != nil {
		opts = append(opts, client.WithToken(sess.Token))
		lg.Debug().Int64("user_id", sess.User.UserID).Msg("session restored")
	}
	a.api = client.New(*authURL, *eventURL, opts...)

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		global.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd(ctx, a, rest)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
