// Command token mints admin access tokens and hashes API keys for the write
// guard.
//
//	token -secret "$ACCESS_SECRET" -sub ops -ttl 24h
//	token -hash-key "my api key"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"coursehub/internal/infrastructure/security"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// ACCESS_SECRET may live in the same app.env the server reads
	if err := godotenv.Load("app.env"); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to read app.env: %v", err)
	}

	secret := flag.String("secret", os.Getenv("ACCESS_SECRET"), "HS256 signing secret")
	subject := flag.String("sub", "admin", "token subject")
	role := flag.String("role", security.RoleAdmin, "token role")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	hashKey := flag.String("hash-key", "", "print the bcrypt hash of this API key and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := security.NewKeyHasher().Hash(*hashKey)
		if err != nil {
			logrus.Fatalf("Failed to hash key: %v", err)
		}
		fmt.Println(hash)
		return
	}

	if *secret == "" {
		logrus.Fatal("-secret or ACCESS_SECRET is required")
	}
	token, err := security.NewTokenManager(*secret).Generate(*subject, *role, *ttl)
	if err != nil {
		logrus.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
