// Example program demonstrating the release library API.
//
// Run from a package repository:
//
//	go run github.com/MyCarrier-DevOps/go-pkgrelease/example
//
// To publish a patch release instead of only listing the candidates:
//
//	RELEASE_INCREMENT=patch go run github.com/MyCarrier-DevOps/go-pkgrelease/example
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"

	"github.com/MyCarrier-DevOps/go-pkgrelease/pkg/sdk"
)

func main() {
	listCandidates()

	if increment := os.Getenv("RELEASE_INCREMENT"); increment != "" {
		publish(increment)
	}
}

func listCandidates() {
	candidates, err := sdk.Candidates(sdk.CandidatesOptions{Path: "."})
	if err != nil {
		log.Fatalf("listing candidates failed: %v", err)
	}

	fmt.Println("=== Candidates ===")
	for _, c := range candidates {
		fmt.Printf("%-12s %s\n", c.Title, c.Version)
	}
	fmt.Println()
}

func publish(increment string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sdk.Release(ctx, sdk.Options{
		Path:      ".",
		Increment: increment,
		Output:    os.Stdout,
	})
	if result != nil {
		printVariables(result)
	}
	if err != nil {
		log.Fatalf("release failed: %v", err)
	}
}

func printVariables(result *sdk.Result) {
	fmt.Printf("=== Release (%s) ===\n", result.State)

	keys := make([]string, 0, len(result.Variables))
	for k := range result.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-20s %s\n", k, result.Variables[k])
	}
	fmt.Println()
}
