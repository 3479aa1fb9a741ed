// Command tokengen mints access tokens for local development and manual
// API testing.  There is no login endpoint in this service; identity comes
// from an upstream issuer sharing the same secret, and this tool stands in
// for it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/arayajs/cinema-booking/internal/utils"
)

func main() {
	userID := flag.Uint64("user", 1, "user id for the sub claim")
	role := flag.String("role", "CUSTOMER", "role claim (CUSTOMER, STAFF, ADMIN)")
	ttl := flag.Int("ttl", 60, "token lifetime in minutes")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	tok, err := utils.NewAccessToken(secret, *userID, *role, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Printf("%s\n", tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}
