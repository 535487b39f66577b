package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fosdem/glbootstrap/lib/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		fmt.Printf("Config invalid: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Config valid!\n\n")

	fmt.Print(cfg)

	vertices, err := cfg.Vertices()
	if err != nil {
		fmt.Printf("\nGeometry invalid: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d vertices (%d triangles)\n", len(vertices), len(vertices)/3)
}
