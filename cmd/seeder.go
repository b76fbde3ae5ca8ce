package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expenses", "budgets", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		demoEmail := "demo@mail.com"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists; nothing to seed")
			return
		}

		if err := db.Exec("INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, now())", demoEmail, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		var demoUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", demoEmail).Row().Scan(&demoUserID); err != nil {
			log.Fatalf("failed to lookup demo user id: %v", err)
		}

		now := time.Now()
		expenses := []struct {
			Amount        float64
			Category      string
			DaysAgo       int
			PaymentMethod string
			Notes         string
		}{
			{450.00, "Food", 1, "UPI", "groceries for the week"},
			{120.50, "Food", 3, "Cash", "lunch with friends"},
			{1200.00, "Rent", 5, "Debit Card", "monthly rent"},
			{89.99, "Shopping", 7, "Credit Card", "new headphones"},
			{340.00, "Travel", 10, "Credit Card", "train tickets"},
			{60.00, "Utilities", 12, "UPI", "electricity bill"},
			{25.00, "Entertainment", 14, "Cash", "movie night"},
			{150.00, "Health", 20, "Debit Card", "pharmacy"},
		}

		for _, e := range expenses {
			expenseDate := now.AddDate(0, 0, -e.DaysAgo)
			if err := db.Exec(
				"INSERT INTO expenses (id, user_id, amount, category, expense_date, payment_method, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())",
				uuid.NewString(), demoUserID, e.Amount, e.Category, expenseDate, e.PaymentMethod, e.Notes,
			).Error; err != nil {
				log.Fatalf("failed to insert expense %s: %v", e.Notes, err)
			}
		}
		fmt.Printf("Seeded %d expenses for demo user\n", len(expenses))

		budgets := []struct {
			Category string
			Limit    float64
		}{
			{"Food", 800},
			{"Shopping", 300},
			{"Entertainment", 150},
		}

		for _, b := range budgets {
			if err := db.Exec(
				"INSERT INTO budgets (id, user_id, category, limit_amount, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				uuid.NewString(), demoUserID, b.Category, b.Limit,
			).Error; err != nil {
				log.Fatalf("failed to insert budget %s: %v", b.Category, err)
			}
		}
		fmt.Printf("Seeded %d budgets for demo user\n", len(budgets))
	},
}
