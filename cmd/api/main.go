package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/scrazdxvf/baraholka-backend/internal/config"
	"github.com/scrazdxvf/baraholka-backend/internal/db"
	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/scrazdxvf/baraholka-backend/internal/server"
	"github.com/scrazdxvf/baraholka-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	var imageStore *storage.ImageStore
	if cfg.StorageBucket != "" {
		imageStore, err = storage.NewImageStore(ctx, cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			log.Printf("image storage disabled: %v", err)
			imageStore = nil
		}
	}

	srv := server.New(nil, cfg, imageStore)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(&model.Listing{}, &model.ListingImage{}, &model.Message{}, &model.Notification{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		go srv.Poller().Run(ctx)
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
