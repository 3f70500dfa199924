// Package cli implements the interactive terminal client for the Presto
// store server: register, login, logout and viewing or replacing the
// account's store document.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prestoapp/presto-server/internal/client/api"
	"github.com/prestoapp/presto-server/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.New(c.ServerBaseURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.email
	}
	return "not logged in"
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Register(ctx, email, password, name); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.email = email
	fmt.Println("Registered as", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.email = email
	fmt.Println("Logged in as", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.email = ""
	fmt.Println("Logged out")
	return nil
}

// Show fetches the store document and pretty-prints it.
func (a *App) Show(ctx context.Context) error {
	store, err := a.api.GetStore(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, store, "", "  "); err != nil {
		fmt.Println(string(store))
		return nil
	}

	fmt.Println(pretty.String())
	return nil
}

// Replace reads a JSON document (pasted inline) and replaces the store
// wholesale.
func (a *App) Replace(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Paste the new store document as JSON", os.Stdout)
	if err != nil {
		return err
	}

	doc := json.RawMessage(text)
	if !json.Valid(doc) {
		fmt.Println("not a valid JSON document")
		return fmt.Errorf("invalid JSON")
	}

	if err := a.api.SetStore(ctx, doc); err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Store replaced")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		fmt.Println("Server unreachable:", err.Error())
		return err
	}

	fmt.Println("Server is up")
	return nil
}
