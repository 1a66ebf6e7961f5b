//go:build ignore

// genhash prints bcrypt hashes for seeding users by hand:
//
//	go run scripts/genhash.go <password> [password...]
package main

import (
	"fmt"
	"os"

	"internview-backend/pkg/security"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/genhash.go <password> [password...]")
		os.Exit(2)
	}

	for _, pass := range os.Args[1:] {
		if err := security.ValidatePassword(pass); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", pass, err)
			continue
		}
		hash, err := security.HashPassword(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			continue
		}
		fmt.Println(hash)
	}
}
