// Command token mints or revokes session tokens for local testing of the
// upload endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fileupload/internal/config"
	"fileupload/internal/port"
	"fileupload/internal/service"
	redisstore "fileupload/internal/storage/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	subject := flag.String("sub", "", "subject (user ID) to issue the token for")
	email := flag.String("email", "", "email claim")
	revoke := flag.String("revoke", "", "token to revoke (requires UPLOADS_REDIS_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var revocation port.SessionRevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		revocation = redisstore.NewRevocationStore(rdb)
	}

	authSvc := service.NewAuthService(cfg.Auth, revocation)

	if *revoke != "" {
		if err := authSvc.RevokeToken(ctx, *revoke); err != nil {
			return fmt.Errorf("revoking token: %w", err)
		}
		log.Printf("token revoked")
		return nil
	}

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, expiresAt, err := authSvc.IssueToken(*subject, *email)
	if err != nil {
		return err
	}
	log.Printf("token for %s expires at %s", *subject, expiresAt.Format(time.RFC3339))
	fmt.Println(token)
	return nil
}
