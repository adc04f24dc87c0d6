package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/pantry-chef/internal/config"
	"github.com/foxxcyber/pantry-chef/internal/database"
	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/pantry"
)

func main() {
	// Command line flags
	email := flag.String("email", "demo@pantrychef.local", "Email of the user to seed")
	password := flag.String("password", "", "Password when the user has to be created")
	username := flag.String("username", "demo", "Username when the user has to be created")
	reset := flag.Bool("reset", false, "Overwrite an existing pantry instead of skipping it")
	dryRun := flag.Bool("dry-run", false, "Preview the seed without writing to database")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	products := pantry.SampleProducts(time.Now())
	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(products)
		return
	}

	user, err := ensureUser(ctx, db, *email, *password, *username)
	if err != nil {
		log.Fatalf("Failed to ensure user: %v", err)
	}

	key := pantry.StorageKey(user.ID)
	_, exists, err := db.GetProducts(ctx, key)
	if err != nil {
		log.Fatalf("Failed to check existing pantry: %v", err)
	}
	if exists && !*reset {
		log.Printf("Pantry for %s already seeded, use -reset to overwrite", *email)
		return
	}

	if err := db.SetProducts(ctx, key, products); err != nil {
		log.Fatalf("Failed to write pantry: %v", err)
	}

	log.Printf("Seeded %d products for %s (user %d)", len(products), *email, user.ID)
}

// ensureUser looks up the user by email and creates it when missing.
func ensureUser(ctx context.Context, db *database.DB, email, password, username string) (*models.User, error) {
	user, err := db.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return nil, err
	}

	if password == "" {
		return nil, fmt.Errorf("user %s does not exist and no -password given", email)
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err = db.CreateUser(ctx, email, string(hashed), &username)
	if err != nil {
		return nil, err
	}
	log.Printf("Created user %s (id %d)", email, user.ID)
	return user, nil
}

// printPreview shows the products that would be written
func printPreview(products []models.Product) {
	fmt.Printf("\n=== Preview of pantry seed ===\n")
	fmt.Printf("Total: %d products\n\n", len(products))
	for _, p := range products {
		fmt.Printf("  %-20s %-12s expires %s\n", p.Name, p.Category, p.ExpirationDate)
	}
}
