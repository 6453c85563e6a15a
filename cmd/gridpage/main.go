package main

import (
	"log"

	"github.com/gridpage/gridpage/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ gridpage failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ gridpage exited with error: %v", err)
	}
}
