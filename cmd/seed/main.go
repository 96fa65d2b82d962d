package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"stockroom/internal/config"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, relying on environment")
	}

	cfg := config.Load()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("seed: connect: %v", err)
	}
	defer db.Close()

	store := repository.NewPostgresStore(db)
	ctx := context.Background()

	if err := seed(ctx, store); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed data loaded")
}

func seed(ctx context.Context, store repository.Store) error {
	adminPassword, err := util.HashPassword("admin123")
	if err != nil {
		return err
	}

	email := "admin@example.com"
	admin := &domain.User{
		Username:  "admin",
		Password:  adminPassword,
		FirstName: "System",
		LastName:  "Administrator",
		Email:     &email,
		IsAdmin:   true,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		if err == repository.ErrUserExists {
			log.Println("admin user already present, skipping")
		} else {
			return err
		}
	}

	assets := []*domain.Asset{
		{AssetTag: "STK-0001", Name: "ThinkPad T14", Category: "laptop", Status: domain.AssetStatusAvailable},
		{AssetTag: "STK-0002", Name: "Dell U2720Q", Category: "monitor", Status: domain.AssetStatusAvailable},
		{AssetTag: "STK-0003", Name: "MacBook Pro 14", Category: "laptop", Status: domain.AssetStatusPending},
	}
	for _, asset := range assets {
		if err := store.Assets().Create(ctx, asset); err != nil {
			if err == repository.ErrAssetTagExists {
				log.Printf("asset %s already present, skipping", asset.AssetTag)
				continue
			}
			return err
		}
	}

	resources := []*domain.Resource{
		{Kind: domain.ResourceKindConsumable, Name: "Toner HP 26A", Category: "printer-supplies", TotalQuantity: 24},
		{Kind: domain.ResourceKindComponent, Name: "16GB DDR4 SODIMM", Category: "memory", TotalQuantity: 30},
		{Kind: domain.ResourceKindAccessory, Name: "USB-C Dock", Category: "docking", TotalQuantity: 12},
		{Kind: domain.ResourceKindLicense, Name: "Office 365 E3", Category: "productivity", TotalQuantity: 50},
	}
	for _, resource := range resources {
		if err := store.Resources().Create(ctx, resource); err != nil {
			return err
		}
	}

	return nil
}
