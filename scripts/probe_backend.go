package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shopfront/internal/api"

	"github.com/rs/zerolog"
)

// Probes the configured backend with a one-page product listing so a
// deployment can be smoke-checked without starting the facade.
func main() {
	baseURL := os.Getenv("BACKEND_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	client := api.NewClient(baseURL, 10*time.Second, nil, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	page, err := client.GetPage(ctx, "/products", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend probe failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Backend reachable at %s: %d products, %d pages\n", baseURL, page.Meta.Total, page.Meta.TotalPages)
}
