package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/config"
	"github.com/rasoilink/rasoilink-backend/pkg/db"
	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
	"github.com/rasoilink/rasoilink-backend/pkg/security"
)

// Dev-only sample data: two suppliers with stocked catalogs and one vendor,
// all sharing the password below.
const seedPassword = "rasoilink-dev"

type seedItem struct {
	name       string
	category   string
	unit       string
	pricePaise int64
	stock      int
	minStock   int
}

type seedUser struct {
	email        string
	name         string
	role         enums.UserRole
	businessName string
	location     string
	specialties  []string
	verified     bool
	items        []seedItem
}

var seedUsers = []seedUser{
	{
		email:        "vendor@rasoilink.dev",
		name:         "Asha Pawar",
		role:         enums.UserRoleVendor,
		businessName: "Asha's Chaat Corner",
		location:     "Pune",
	},
	{
		email:        "spices@rasoilink.dev",
		name:         "Ravi Deshmukh",
		role:         enums.UserRoleSupplier,
		businessName: "Deshmukh Spice Traders",
		location:     "Pune",
		specialties:  []string{"spices", "masalas"},
		verified:     true,
		items: []seedItem{
			{name: "Red Chilli Powder", category: "spices", unit: "kg", pricePaise: 28000, stock: 120, minStock: 20},
			{name: "Turmeric Powder", category: "spices", unit: "kg", pricePaise: 22000, stock: 90, minStock: 15},
			{name: "Garam Masala", category: "masalas", unit: "kg", pricePaise: 45000, stock: 40, minStock: 10},
		},
	},
	{
		email:        "produce@rasoilink.dev",
		name:         "Meena Joshi",
		role:         enums.UserRoleSupplier,
		businessName: "Joshi Fresh Produce",
		location:     "Mumbai",
		specialties:  []string{"vegetables", "oils"},
		items: []seedItem{
			{name: "Onions", category: "vegetables", unit: "kg", pricePaise: 3500, stock: 500, minStock: 50},
			{name: "Tomatoes", category: "vegetables", unit: "kg", pricePaise: 4200, stock: 300, minStock: 50},
			{name: "Sunflower Oil", category: "oils", unit: "litre", pricePaise: 14500, stock: 80, minStock: 10},
		},
	},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		fmt.Fprintln(os.Stderr, "refusing to seed a production database")
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	passwordHash, err := security.HashPassword(seedPassword, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash seed password", err)
		os.Exit(1)
	}

	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		for _, su := range seedUsers {
			user, err := upsertUser(ctx, tx, su, passwordHash)
			if err != nil {
				return fmt.Errorf("seeding user %s: %w", su.email, err)
			}
			for _, item := range su.items {
				if err := upsertItem(ctx, tx, user.ID, item); err != nil {
					return fmt.Errorf("seeding item %s: %w", item.name, err)
				}
			}
			logg.Info(logg.WithField(ctx, "email", su.email), "seeded user")
		}
		return nil
	})
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed completed")
}

func upsertUser(ctx context.Context, tx *gorm.DB, su seedUser, passwordHash string) (*models.User, error) {
	var existing models.User
	err := tx.WithContext(ctx).First(&existing, "email = ?", su.email).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	specialties := su.specialties
	if specialties == nil {
		specialties = []string{}
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        su.email,
		PasswordHash: passwordHash,
		Name:         su.name,
		Role:         su.role,
		BusinessName: su.businessName,
		Location:     su.location,
		Specialties:  specialties,
		Verified:     su.verified,
		IsActive:     true,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func upsertItem(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, item seedItem) error {
	var existing models.InventoryItem
	err := tx.WithContext(ctx).
		First(&existing, "supplier_id = ? AND name = ?", supplierID, item.name).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return tx.WithContext(ctx).Create(&models.InventoryItem{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		Name:        item.name,
		Category:    item.category,
		Unit:        item.unit,
		PricePaise:  item.pricePaise,
		Stock:       item.stock,
		MinStock:    item.minStock,
		IsAvailable: true,
	}).Error
}
