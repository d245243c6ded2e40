// Command hashpassword prints the bcrypt hash of a password, for seeding users by hand.
package main

import (
	"fmt"
	"os"

	"github.com/nexpertia/marketplace-api/utils/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(2)
	}

	hash, err := auth.NewBcryptHasher(auth.DefaultCost).Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpassword: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
