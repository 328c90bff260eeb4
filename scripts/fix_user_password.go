package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/training-calendar-api/registration"
)

// Quick utility to reset an account password by hand
// Usage: go run scripts/fix_user_password.go <email> <password>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/fix_user_password.go <email> <password>")
		os.Exit(1)
	}

	email, password := os.Args[1], os.Args[2]

	// same cost as accounts created through registration
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), registration.DefaultPasswordCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", string(hashedPassword))
	fmt.Printf("\nTo update in MongoDB, run:\n")
	fmt.Printf("db.users.updateOne(\n")
	fmt.Printf("  {\"user.email\": \"%s\"},\n", email)
	fmt.Printf("  {$set: {\"user.password\": \"%s\"}}\n", string(hashedPassword))
	fmt.Printf(")\n")
}
