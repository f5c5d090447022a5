package main

import (
	"context"
	"log"
	"time"

	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/role"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/user"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One-way migration: derive a canonical role code for every user record that
// still lacks one, from its free-text position title. After this runs, the
// workflow engine only ever reads the role field.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	mongodb := &database.MongodbDB{Client: client, DB: client.Database(cfg.DBName)}
	users := user.NewUserRepository(mongodb)

	pending, err := users.ListMissingRole(ctx)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}

	migrated := 0
	for _, u := range pending {
		canonical := role.TranslateTitle(u.Position)

		if err := users.SetRole(ctx, u.ID.Hex(), string(canonical)); err != nil {
			log.Printf("update %s: %v", u.ID.Hex(), err)
			continue
		}

		log.Printf("user %s: %q -> %s", u.ID.Hex(), u.Position, canonical)
		migrated++
	}

	log.Printf("migrated %d of %d users", migrated, len(pending))
}
