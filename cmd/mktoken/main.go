// mktoken mints a session token signed with JWT_SECRET. Session
// issuance proper lives outside the gateway; this is the dev/ops
// stand-in for it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bookshelf/internal/auth"
)

func main() {
	var (
		subject = flag.String("subject", "owner", "token subject")
		ttl     = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	_ = godotenv.Load(".env.local")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing required environment variable: JWT_SECRET")
	}

	token, err := auth.GenerateToken(secret, *subject, *ttl)
	if err != nil {
		log.Fatalf("cannot generate token: %v", err)
	}
	fmt.Println(token)
}
