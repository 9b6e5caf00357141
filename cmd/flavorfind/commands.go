package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	fmt "github.com/jhunt/go-ansi"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/harrylevesque/flavorfind/internal/app"
	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/ui"
)

var errNotLoggedIn = errors.New("not logged in; run `flavorfind login EMAIL` first")

func (c *client) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "shell":
		return c.shell(ctx)

	case "status":
		c.app.Start(ctx)
		connected, status := c.app.Connection()
		ui.Indicator(os.Stdout, connected, status)
		if u := c.app.User(); u != nil {
			fmt.Printf("logged in as @G{%s} <%s>\n", u.Name, u.Email)
		} else {
			fmt.Printf("not logged in\n")
		}
		if !connected {
			return errors.New("backend unreachable")
		}
		return nil

	case "whoami":
		c.app.Bootstrap(ctx)
		u := c.app.User()
		if u == nil {
			return errNotLoggedIn
		}
		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		return nil

	case "login":
		if len(args) != 1 {
			return errors.New("usage: flavorfind login EMAIL")
		}
		return c.login(ctx, args[0])

	case "signup":
		if len(args) != 2 {
			return errors.New("usage: flavorfind signup NAME EMAIL")
		}
		return c.signup(ctx, args[0], args[1])

	case "logout":
		c.app.Logout(ctx)
		fmt.Printf("logged out\n")
		return nil

	case "list":
		if err := c.requireSession(ctx); err != nil {
			return err
		}
		if err := c.view.Load(ctx); err != nil {
			return err
		}
		ui.Dashboard(os.Stdout, c.app.User(), c.view, c.admin)
		return nil

	case "add":
		if len(args) < 1 {
			return errors.New("usage: flavorfind add NAME [--address ADDR] [--cuisine CUISINE] [--description TEXT]")
		}
		if err := c.requireSession(ctx); err != nil {
			return err
		}
		form, err := c.formFromOptions(strings.Join(args, " "))
		if err != nil {
			return err
		}
		c.view.SetForm(form)
		if err := c.view.Submit(ctx); err != nil {
			return err
		}
		ui.Card(os.Stdout, c.view.Restaurants()[0])
		return nil
	}
	return errors.New("unknown command '" + cmd + "'; try --help")
}

func (c *client) requireSession(ctx context.Context) error {
	c.app.Bootstrap(ctx)
	if c.app.Screen() != app.ScreenDashboard {
		return errNotLoggedIn
	}
	return nil
}

func (c *client) formFromOptions(name string) (models.RestaurantForm, error) {
	form := models.DefaultRestaurantForm()
	form.Name = strings.TrimSpace(name)
	form.Address = c.opt.Address
	form.Description = c.opt.Description
	if c.opt.Cuisine != "" {
		cuisine, err := models.ParseCuisine(c.opt.Cuisine)
		if err != nil {
			return form, errors.New(err.Error() + ": " + c.opt.Cuisine)
		}
		form.Cuisine = cuisine
	}
	return form, form.Validate()
}

func (c *client) login(ctx context.Context, email string) error {
	pw, err := c.password(ctx)
	if err != nil {
		return err
	}
	if err := c.app.Login(ctx, email, pw); err != nil {
		return err
	}
	fmt.Printf("Welcome, @G{%s}!\n", c.app.User().Name)
	return nil
}

func (c *client) signup(ctx context.Context, name, email string) error {
	pw, err := c.password(ctx)
	if err != nil {
		return err
	}
	if err := c.app.Signup(ctx, name, email, pw); err != nil {
		return err
	}
	fmt.Printf("Welcome, @G{%s}!\n", c.app.User().Name)
	return nil
}

// password comes from --password / FLAVORFIND_PASSWORD, or is read from
// the terminal without echo. Cancelling ctx abandons the prompt and puts
// the terminal back the way it was.
func (c *client) password(ctx context.Context) (string, error) {
	if c.opt.Password != "" {
		return c.opt.Password, nil
	}
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		pw, err := ui.NewPrompter(os.Stderr, c.in).Ask(ctx, "Password")
		if errors.Is(err, io.EOF) || (err == nil && pw == "") {
			return "", errors.New("no password given")
		}
		return pw, err
	}

	state, err := terminal.GetState(fd)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "@C{Password}: ")
	type result struct {
		pw  []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pw, err := terminal.ReadPassword(fd)
		ch <- result{pw, err}
	}()
	select {
	case <-ctx.Done():
		terminal.Restore(fd, state)
		fmt.Fprintf(os.Stderr, "\n")
		return "", ctx.Err()
	case r := <-ch:
		fmt.Fprintf(os.Stderr, "\n")
		if r.err != nil {
			return "", r.err
		}
		return string(r.pw), nil
	}
}
