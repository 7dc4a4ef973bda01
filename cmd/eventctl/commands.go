package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/eventhub/platform/internal/client"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
	"github.com/eventhub/platform/internal/session"
)

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"register": cmdRegister,
	"login":    cmdLogin,
	"logout":   cmdLogout,
	"whoami":   cmdWhoami,
	"profile":  cmdProfile,
	"events":   cmdEvents,
	"event":    cmdEvent,
	"comments": cmdComments,
	"create":   cmdCreate,
	"delete":   cmdDelete,
	"comment":  cmdComment,
	"join":     cmdJoin,
	"leave":    cmdLeave,
}

var errNotLoggedIn = errors.New("not logged in; run eventctl login first")

func flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// oneID parses a command whose only argument is an event id.
func oneID(name string, args []string) (string, error) {
	fs := flags(name)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("usage: eventctl %s <id>", name)
	}
	return fs.Arg(0), nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) requireSession() error {
	if a.sess == nil {
		return errNotLoggedIn
	}
	return nil
}

// signIn stores the token and the principal it carries.
func (a *app) signIn(res *client.AuthResponse) error {
	p, _, err := token.Peek(res.Token)
	if err != nil || !p.Authenticated() {
		p = domain.Principal{UserID: res.UserID, Role: domain.RoleUser, Name: res.Name, Surname: res.Surname}
	}

	sess := session.Session{Token: res.Token, User: p, Email: res.Email}
	if err := a.store.Save(sess); err != nil {
		return err
	}
	a.sess = &sess
	a.api.SetToken(res.Token)

	fmt.Fprintf(a.out, "logged in as %s %s (id %d)\n", p.Name, p.Surname, p.UserID)
	return nil
}

// --- Auth ---

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := flags("register")
	var req client.RegisterRequest
	fs.StringVar(&req.Name, "name", "", "first name")
	fs.StringVar(&req.Surname, "surname", "", "last name")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number (12 characters)")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.signIn(res)
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := flags("login")
	var req client.LoginRequest
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A failed login must not leave the previous session attached.
	a.api.SetToken("")
	res, err := a.api.Login(ctx, req)
	if err != nil {
		return err
	}
	return a.signIn(res)
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.sess = nil
	a.api.SetToken("")
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	if a.sess == nil {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}

	u := a.sess.User
	fmt.Fprintf(a.out, "%s %s (id %d, role %s)\n", u.Name, u.Surname, u.UserID, u.Role)
	if _, exp, err := token.Peek(a.sess.Token); err == nil && !exp.IsZero() {
		if time.Now().After(exp) {
			fmt.Fprintf(a.out, "token expired at %s\n", exp.Format(time.RFC3339))
		} else {
			fmt.Fprintf(a.out, "token expires at %s\n", exp.Format(time.RFC3339))
		}
	}
	return nil
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	fs := flags("profile")
	name := fs.String("name", "", "new first name")
	surname := fs.String("surname", "", "new last name")
	phone := fs.String("phone", "", "new phone number")
	email := fs.String("email", "", "new email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var upd client.ProfileUpdate
	if fs.Changed("name") {
		upd.Name = name
	}
	if fs.Changed("surname") {
		upd.Surname = surname
	}
	if fs.Changed("phone") {
		upd.PhoneNumber = phone
	}
	if fs.Changed("email") {
		upd.Email = email
	}

	if upd == (client.ProfileUpdate{}) {
		u, err := a.api.GetUser(ctx, a.sess.User.UserID)
		if err != nil {
			return err
		}
		return a.print(u)
	}

	if err := a.api.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "profile updated")
	return nil
}

// --- Events ---

func cmdEvents(ctx context.Context, a *app, _ []string) error {
	events, err := a.api.ListEvents(ctx)
	if err != nil {
		return err
	}
	return a.print(events)
}

func cmdEvent(ctx context.Context, a *app, args []string) error {
	id, err := oneID("event", args)
	if err != nil {
		return err
	}
	e, err := a.api.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	return a.print(e)
}

func cmdComments(ctx context.Context, a *app, args []string) error {
	id, err := oneID("comments", args)
	if err != nil {
		return err
	}
	comments, err := a.api.ListComments(ctx, id)
	if err != nil {
		return err
	}
	return a.print(comments)
}

func cmdCreate(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	fs := flags("create")
	var in client.NewEvent
	fs.StringVar(&in.Title, "title", "", "event title")
	fs.StringVar(&in.Description, "description", "", "event description")
	date := fs.String("date", "", "event date (RFC 3339)")
	fs.StringVar(&in.Location, "location", "", "event location")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := time.Parse(time.RFC3339, *date)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}
	in.Date = d

	e, err := a.api.CreateEvent(ctx, in)
	if err != nil {
		return err
	}
	return a.print(e)
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := oneID("delete", args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteEvent(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", id)
	return nil
}

func cmdComment(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	fs := flags("comment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: eventctl comment <id> <text>")
	}

	c, err := a.api.AddComment(ctx, fs.Arg(0), strings.Join(fs.Args()[1:], " "))
	if err != nil {
		return err
	}
	return a.print(c)
}

func cmdJoin(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := oneID("join", args)
	if err != nil {
		return err
	}
	p, err := a.api.Join(ctx, id)
	if err != nil {
		return err
	}
	return a.print(p)
}

func cmdLeave(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := oneID("leave", args)
	if err != nil {
		return err
	}
	if err := a.api.Leave(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "left %s\n", id)
	return nil
}
