// Command issue-token mints an access token for a staff member. Authentication
// happens upstream; operators use this to hand tokens to staff devices.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/config"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/jwt"
)

func main() {
	staffID := flag.Int64("staff", 0, "staff profile id")
	role := flag.String("role", string(jwt.RoleStaff), "role: "+strings.Join(jwt.RoleValues, ", "))
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var (
		token     string
		expiresAt int64
	)
	if *ttl > 0 {
		token, expiresAt, err = svc.GenerateAccessTokenWithTTL(*staffID, jwt.Role(*role), *ttl)
	} else {
		token, expiresAt, err = svc.GenerateAccessToken(*staffID, jwt.Role(*role))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).In(cfg.Location()).Format(time.RFC3339))
	fmt.Println(token)
}
