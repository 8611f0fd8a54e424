// devtoken выпускает access токен для локальной разработки, пока сервис
// сессий не поднят: go run ./cmd/devtoken -user <uuid> -role admin
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/auth"
	"github.com/ignatzorin/classifieds-backend/internal/config"
)

func main() {
	userFlag := flag.String("user", "", "UUID пользователя (по умолчанию случайный)")
	role := flag.String("role", "user", "роль: user или admin")
	ttl := flag.Duration("ttl", time.Hour, "время жизни токена")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("devtoken: ошибка загрузки конфигурации: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("devtoken: запрещено в production")
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("devtoken: некорректный UUID: %v", err)
		}
	}

	token, exp, err := auth.NewTokenManager(cfg.JWTSecret, *ttl).Issue(userID, *role)
	if err != nil {
		log.Fatalf("devtoken: %v", err)
	}

	fmt.Printf("user:    %s\nrole:    %s\nexpires: %s\n\n%s\n", userID, *role, exp.Format(time.RFC3339), token)
}
