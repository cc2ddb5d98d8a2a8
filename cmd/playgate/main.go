package main

import (
	"log"

	"github.com/playgate/playgate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ playgate failed to start: %v", err)
	}
}
