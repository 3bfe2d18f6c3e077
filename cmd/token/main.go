// Command token mints bearer tokens for the aircraft write routes and hashes
// operator passwords for ADMIN_PASSWORD_HASH.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"aircraft_manager/internal/config"
	"aircraft_manager/internal/controllers"
	"aircraft_manager/internal/middleware"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", middleware.DefaultTokenTTL, "token lifetime")
	password := flag.String("hash-password", "", "print the bcrypt hash of this password instead of a token")
	flag.Parse()

	if *password != "" {
		hash, err := controllers.HashPassword(*password)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to hash password")
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.AuthSecret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_SECRET is not set")
		os.Exit(1)
	}

	token, err := middleware.GenerateToken([]byte(cfg.AuthSecret), *subject, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to sign token")
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
}
