package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"userdir/internal/config"
	"userdir/internal/db"
	"userdir/internal/model"
	"userdir/internal/repository"
)

var sampleUsers = []model.User{
	{Name: "Ada Lovelace", Email: "ada@example.com"},
	{Name: "Grace Hopper", Email: "grace@example.com"},
	{Name: "Alan Turing", Email: "alan@example.com"},
	{Name: "Katherine Johnson", Email: "katherine@example.com"},
	{Name: "Edsger Dijkstra", Email: "edsger@example.com"},
}

func main() {
	log.Println("starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, u := range sampleUsers {
		if _, err := repo.FindByEmail(ctx, u.Email); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("lookup %s: %v", u.Email, err)
		}

		user := u
		if err := repo.Create(ctx, &user); err != nil {
			log.Fatalf("create %s: %v", u.Email, err)
		}
		created++
	}

	log.Printf("seed complete: %d created, %d already present", created, skipped)
}
