// shelf is the terminal client for the bookshelf gateway: list the
// collection, add/edit/delete records, upload cover images.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"bookshelf/internal/client"
	"bookshelf/internal/tui"
)

func main() {
	_ = godotenv.Load(".env.local")

	server := pflag.String("server", envOr("SHELF_SERVER", "http://localhost:8080"), "gateway base URL")
	token := pflag.String("token", os.Getenv("SHELF_TOKEN"), "session token (or SHELF_TOKEN)")
	pflag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "no session token: set SHELF_TOKEN or pass --token (mint one with mktoken)")
		os.Exit(1)
	}

	api := client.New(*server, *token)
	model := tui.NewModel(api)

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(tui.Model); ok && m.AuthErr() != nil {
		if errors.Is(m.AuthErr(), client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "session invalid or expired: mint a fresh token and try again")
		} else {
			fmt.Fprintf(os.Stderr, "cannot reach gateway: %v\n", m.AuthErr())
		}
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
