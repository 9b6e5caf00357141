package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	fmt "github.com/jhunt/go-ansi"

	"github.com/harrylevesque/flavorfind/internal/app"
	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/ui"
)

// shell is the interactive screen loop: the current screen is drawn, one
// command is read and handled, and the screen is drawn again.
func (c *client) shell(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.app.Start(ctx)
		close(done)
	}()
	ui.Render(os.Stdout, c.app, c.view, c.admin)
	<-done

	prompt := ui.NewPrompter(os.Stdout, c.in)
	loaded := false
	for {
		if c.app.Screen() == app.ScreenDashboard && !loaded {
			c.view.Load(ctx)
			loaded = true
		}
		ui.Render(os.Stdout, c.app, c.view, c.admin)

		words, err := prompt.Command(ctx)
		if ctx.Err() != nil {
			fmt.Printf("\n@Y{interrupted, leaving FlavorFind}\n")
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "quit", "exit":
			return nil

		case "login":
			if len(words) != 2 {
				fmt.Printf("@Y{usage: login EMAIL}\n")
				continue
			}
			c.login(ctx, words[1])

		case "signup":
			if len(words) < 3 {
				fmt.Printf("@Y{usage: signup NAME EMAIL}\n")
				continue
			}
			c.signup(ctx, strings.Join(words[1:len(words)-1], " "), words[len(words)-1])

		case "logout":
			c.app.Logout(ctx)
			loaded = false

		case "refresh":
			loaded = false

		case "add":
			if c.app.Screen() != app.ScreenDashboard {
				fmt.Printf("@Y{log in first}\n")
				continue
			}
			c.addInteractive(ctx, prompt, strings.Join(words[1:], " "))

		default:
			fmt.Printf("@Y{unknown command '%s'}\n", words[0])
		}
	}
}

// addInteractive fills the form field by field and submits it. A failed
// submit keeps the form, and the next add offers its values as defaults.
func (c *client) addInteractive(ctx context.Context, prompt *ui.Prompter, name string) {
	form := c.view.Form()
	var err error
	if name == "" {
		if name, err = prompt.AskDefault(ctx, "Restaurant Name", form.Name); err != nil {
			return
		}
	}
	form.Name = name
	if form.Address, err = prompt.AskDefault(ctx, "Address", form.Address); err != nil {
		return
	}
	for {
		raw, err := prompt.AskDefault(ctx, "Cuisine", string(form.Cuisine))
		if err != nil {
			return
		}
		if cuisine, err := models.ParseCuisine(raw); err == nil {
			form.Cuisine = cuisine
			break
		}
		fmt.Printf("@Y{unknown cuisine '%s'}\n", raw)
	}

	c.view.SetForm(form)
	if err := c.view.Submit(ctx); errors.Is(err, models.ErrNameRequired) {
		fmt.Printf("@Y{a restaurant needs a name}\n")
	}
}
