package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/scrazdxvf/baraholka-backend/internal/config"
	"github.com/scrazdxvf/baraholka-backend/internal/db"
	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"gorm.io/gorm"
)

const (
	sampleSellerUID = "sampleSellerABC"
	sampleBuyerUID  = "sampleUser123"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Listing{}, &model.ListingImage{}, &model.Message{}, &model.Notification{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.Model(&model.Listing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("listings already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM messages").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM listing_images").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM listings").Error; err != nil {
			return err
		}

		listings := buildSeedListings()
		for i := range listings {
			if err := tx.Create(&listings[i]).Error; err != nil {
				return fmt.Errorf("create listing %q: %w", listings[i].Title, err)
			}
		}

		msg := model.Message{
			ListingID:   listings[0].ID,
			SenderUID:   sampleBuyerUID,
			ReceiverUID: sampleSellerUID,
			SenderName:  "Покупатель",
			Body:        "Здравствуйте! Кроссовки еще в наличии? Возможен торг?",
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("create message: %w", err)
		}

		log.Printf("seeded %d listings", len(listings))
		return nil
	})
}

func buildSeedListings() []model.Listing {
	return []model.Listing{
		{
			OwnerUID:    sampleSellerUID,
			OwnerName:   "Продавец",
			Title:       "Крутые кроссовки Nike Air",
			Description: "Почти новые, размер 42. Носились пару раз.",
			Price:       2500,
			Category:    "clothing",
			Subcategory: "shoes",
			City:        "Киев",
			Condition:   model.ConditionUsed,
			ContactInfo: "@sample_seller",
			Status:      model.StatusActive,
			Images:      []model.ListingImage{{ImageURL: "https://picsum.photos/seed/sneakers/640/480"}},
		},
		{
			OwnerUID:    sampleSellerUID,
			OwnerName:   "Продавец",
			Title:       "iPhone 13, 128 ГБ",
			Description: "Состояние отличное, комплект полный.",
			Price:       18000,
			Category:    "electronics",
			Subcategory: "phones",
			City:        "Харьков",
			Condition:   model.ConditionUsed,
			ContactInfo: "@sample_seller",
			Status:      model.StatusActive,
			Images:      []model.ListingImage{{ImageURL: "https://picsum.photos/seed/iphone/640/480"}},
		},
		{
			OwnerUID:    sampleSellerUID,
			OwnerName:   "Продавец",
			Title:       "Велосипед горный Trek",
			Description: "Рама M, тормоза гидравлика. Новый, не катался.",
			Price:       14500,
			Category:    "transport",
			Subcategory: "bicycles",
			City:        "Львов",
			Condition:   model.ConditionNew,
			ContactInfo: "@sample_seller",
			Status:      model.StatusPending,
			Images:      []model.ListingImage{{ImageURL: "https://picsum.photos/seed/bike/640/480"}},
		},
	}
}
