package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ecofinds/ecofinds-backend/config"
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports product listings from an XLSX export. Expected columns:
// seller_email, title, description, price, category, image
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath, userRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped: %d)\n", len(products), skipped)
	if len(products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, userRepo repository.UserRepository) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	// Seller lookups repeat heavily in exports, cache by email.
	sellerIDs := make(map[string]uint)
	skipped := 0

	var products []model.Product
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skipped++
			continue
		}

		email := strings.TrimSpace(row[0])
		title := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])

		if email == "" || title == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+1, priceStr)
			skipped++
			continue
		}

		sellerID, ok := sellerIDs[email]
		if !ok {
			user, err := userRepo.FindByEmail(email)
			if err != nil {
				fmt.Printf("Row %d: seller %s not found, skipping\n", i+1, email)
				skipped++
				continue
			}
			sellerID = user.ID
			sellerIDs[email] = sellerID
		}

		product := model.Product{
			UserID:      sellerID,
			Title:       title,
			Description: description,
			Price:       price,
		}
		if len(row) > 4 {
			product.Category = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			product.Image = strings.TrimSpace(row[5])
		}

		products = append(products, product)
	}

	return products, skipped, nil
}
