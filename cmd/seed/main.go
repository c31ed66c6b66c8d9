package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bazary/bazary-backend/internal/config"
	"github.com/bazary/bazary-backend/internal/db"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	City     string
	Role     model.Role
}

type seedProduct struct {
	OwnerEmail  string
	Title       string
	Description string
	Price       uint
	Category    string
	City        string
	Negotiable  bool
}

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
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	var count int64
	if err := conn.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	users := buildSeedUsers()
	products := buildSeedProducts()

	return conn.Transaction(func(tx *gorm.DB) error {
		byEmail := make(map[string]uint64, len(users))
		for _, su := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u := model.User{
				Name:         su.Name,
				Email:        su.Email,
				PasswordHash: string(hash),
				City:         su.City,
				Role:         su.Role,
				MannerTemp:   model.DefaultMannerTemp,
			}
			if err := tx.Where("email = ?", su.Email).FirstOrCreate(&u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", su.Email, err)
			}
			byEmail[su.Email] = u.ID
			log.Printf("seeded user %s (%s)", su.Email, su.Role)
		}
		for _, sp := range products {
			ownerID, ok := byEmail[sp.OwnerEmail]
			if !ok {
				return fmt.Errorf("seed product %q: unknown owner %s", sp.Title, sp.OwnerEmail)
			}
			p := model.Product{
				UserID:      ownerID,
				Title:       sp.Title,
				Description: sp.Description,
				Price:       sp.Price,
				Category:    sp.Category,
				City:        sp.City,
				Status:      model.ProductStatusAvailable,
				Negotiable:  sp.Negotiable,
			}
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", sp.Title, err)
			}
		}
		log.Printf("seeded %d users and %d products", len(users), len(products))
		return nil
	})
}

func buildSeedUsers() []seedUser {
	return []seedUser{
		{Name: "Admin Bazary", Email: "admin@bazary.mg", Password: "admin-change-me", City: "Antananarivo", Role: model.RoleAdmin},
		{Name: "Hery Modérateur", Email: "moderateur@bazary.mg", Password: "modo-change-me", City: "Antananarivo", Role: model.RoleModerator},
		{Name: "Naina R.", Email: "naina@example.mg", Password: "password123", City: "Antananarivo", Role: model.RoleUser},
		{Name: "Fara A.", Email: "fara@example.mg", Password: "password123", City: "Toamasina", Role: model.RoleUser},
	}
}

func buildSeedProducts() []seedProduct {
	return []seedProduct{
		{OwnerEmail: "naina@example.mg", Title: "Vélo tout terrain", Description: "VTT 26 pouces, bon état, freins récents.", Price: 450000, Category: "sport", City: "Antananarivo", Negotiable: true},
		{OwnerEmail: "naina@example.mg", Title: "Table en palissandre", Description: "Table artisanale 6 places, fabrication locale.", Price: 800000, Category: "maison", City: "Antananarivo", Negotiable: true},
		{OwnerEmail: "fara@example.mg", Title: "Smartphone Android 128 Go", Description: "Écran 6.5 pouces, batterie neuve, avec chargeur.", Price: 650000, Category: "electronique", City: "Toamasina", Negotiable: false},
		{OwnerEmail: "fara@example.mg", Title: "Machine à coudre", Description: "Machine mécanique, révision complète faite.", Price: 300000, Category: "maison", City: "Toamasina", Negotiable: true},
	}
}
