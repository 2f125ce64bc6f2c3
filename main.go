package main

import (
	"log"

	"github.com/FACorreiaa/loci-canvas-api/cmd/api"
)

func main() {
	if err := api.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
