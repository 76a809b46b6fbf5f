package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/crypto"
)

func main() {
	var (
		subject = flag.String("sub", "operator", "Token subject")
		role    = flag.String("role", httpx.RoleAdmin, "Token role")
		ttl     = flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	token, jti, err := crypto.GenerateToken(cfg.JWTSecret, *subject, *role, *ttl)
	if err != nil {
		log.Fatalf("cannot issue token: %v", err)
	}
	log.Printf("issued token jti=%s sub=%s role=%s ttl=%s", jti, *subject, *role, *ttl)
	fmt.Println(token)
}
