package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"rentlify/internal/model"

	"github.com/shopspring/decimal"
)

// Writes a sample gzip-compressed JSON-lines catalogue for local runs.
// Rental-only, purchase-only, dual-offer and unavailable products are all
// represented so every cart path can be tried by hand.
func main() {
	out := flag.String("out", "data/products.jsonl.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	products := []model.Product{
		sample("sofa-3-seater", "3 Seater Fabric Sofa", "furniture", "vendor-homecraft", "899", "0", "2000", true),
		sample("queen-bed", "Queen Bed with Storage", "furniture", "vendor-homecraft", "1099", "0", "2500", true),
		sample("study-table", "Study Table", "furniture", "vendor-woodline", "349", "6499", "500", true),
		sample("led-tv-43", "43 inch LED TV", "electronics", "vendor-volt", "1200", "34999", "3000", true),
		sample("washing-machine", "Front Load Washing Machine", "appliances", "vendor-volt", "999", "0", "2500", true),
		sample("air-purifier", "Air Purifier", "appliances", "vendor-volt", "0", "11999", "0", true),
		sample("recliner", "Single Recliner", "furniture", "vendor-woodline", "749", "0", "1500", false),
	}

	if err := writeCatalogue(*out, products, now); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
}

func sample(id, name, category, vendor, rent, buy, deposit string, available bool) model.Product {
	return model.Product{
		ID:        id,
		Name:      name,
		Category:  category,
		VendorID:  vendor,
		RentPrice: decimal.RequireFromString(rent),
		BuyPrice:  decimal.RequireFromString(buy),
		Deposit:   decimal.RequireFromString(deposit),
		Available: available,
	}
}

func writeCatalogue(filePath string, products []model.Product, createdAt time.Time) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)

	for _, p := range products {
		p.CreatedAt = createdAt
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	return gzipWriter.Close()
}
