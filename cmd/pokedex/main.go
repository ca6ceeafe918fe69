package main

import (
	"log"

	"github.com/MrSnakeDoc/pokedex/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ pokedex failed to start: %v", err)
	}
}
