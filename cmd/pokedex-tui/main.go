package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/pokedex/internal/app"
	"github.com/MrSnakeDoc/pokedex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pokedex-tui [query]",
	Short: "Browse the Pokémon catalog from the terminal",
	Long: `Interactive Pokémon catalog browser.

The optional query is a browsing state in URL query form, for example:

  pokedex-tui "type=fire&sort=name"
  pokedex-tui "search=pika&favorites=true"

Favorites are kept in a local SQLite file (POKEDEX_SQLITE_PATH).`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return app.RunTUI(query)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ pokedex-tui: %v\n", err)
		os.Exit(1)
	}
}
