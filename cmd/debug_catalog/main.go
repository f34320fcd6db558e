package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/config"
	"stock-matcher/core/database"
	"stock-matcher/core/statestore"
	"stock-matcher/core/storage"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	// Create storage client
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	trace := ""
	if len(os.Args) > 1 {
		trace = strings.TrimSpace(os.Args[1])
	}

	// Test 1: Fetch and normalize the master list
	fmt.Println("=== TEST 1: Master List Loading ===")
	var source catalog.Source
	switch {
	case cfg.Catalog.URL != "":
		source = catalog.NewHTTPSource(cfg.Catalog.URL, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second)
	case cfg.Catalog.Object != "":
		source = catalog.NewObjectSource(client, cfg.Storage.Bucket, cfg.Catalog.Object)
	default:
		log.Fatal("no master list source configured")
	}
	fmt.Printf("Source: %s\n", source.Name())

	rows, err := source.Fetch(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Raw rows fetched: %d\n", len(rows))

	cat, err := catalog.Normalize(rows, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Items after normalization: %d (dropped %d)\n", cat.Len(), len(rows)-cat.Len())

	invalid := 0
	byRack := make(map[string]int)
	for _, item := range cat.Items() {
		if !barcode.IsValid(item.Barcode) {
			invalid++
		}
		byRack[strings.ToUpper(item.RackLabel)]++
	}
	fmt.Printf("Items with non-scannable barcodes: %d\n", invalid)
	fmt.Printf("Distinct rack labels: %d\n", len(byRack))

	// Test 2: Load saved session state
	fmt.Println("\n=== TEST 2: Session State ===")
	deps := statestore.Deps{Storage: client, Bucket: cfg.Storage.Bucket}
	if cfg.State.Driver == statestore.DriverSQL {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Fatal(err)
		}
		deps.DB = db
	}
	if cfg.State.Driver == statestore.DriverRedis {
		rdb, err := statestore.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		deps.Redis = rdb
	}
	store, err := statestore.New(ctx, cfg.State, deps)
	if err != nil {
		log.Fatal(err)
	}
	state, err := store.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Racks saved: %d (selected scope %q)\n", len(state.Racks), state.SelectedScope)

	unlisted := make(map[string]int)
	scannedByRack := make(map[string]int)
	for rackID, l := range state.Racks {
		scannedByRack[rackID] = l.TotalQuantity()
		for code, rec := range l {
			if _, ok := cat.Get(code); !ok {
				unlisted[code] += rec.Quantity
			}
		}
	}
	fmt.Printf("Unlisted barcodes scanned: %d\n", len(unlisted))

	// Test 3: Trace a single barcode
	if trace != "" {
		fmt.Printf("\n=== TEST 3: Trace %s ===\n", trace)
		if item, ok := cat.Get(trace); ok {
			fmt.Printf("FOUND in master list: name=%s, rack=%s, expected=%d\n", item.Name, item.RackLabel, item.ExpectedQty)
		} else {
			fmt.Println("NOT FOUND in master list")
		}
		for rackID, l := range state.Racks {
			if rec, ok := l[trace]; ok {
				fmt.Printf("Scanned in %s: qty=%d, last=%s\n", rackID, rec.Quantity, rec.LastScannedAt.Format(time.RFC3339))
			}
		}
	}

	// Save detailed output
	output := map[string]interface{}{
		"source":           source.Name(),
		"raw_rows":         len(rows),
		"catalog_count":    cat.Len(),
		"invalid_barcodes": invalid,
		"expected_by_rack": byRack,
		"scanned_by_rack":  scannedByRack,
		"unlisted":         unlisted,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_catalog.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_catalog.json for details.")
}
