package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	ownerID := seedUsers(db)
	seedCustomers(db, ownerID)
	seedProducts(db, ownerID)

	log.Println("Seeding completed successfully!")
}

func seedUsers(db *sql.DB) string {
	hash, err := argon2id.CreateHash("password123", argon2id.DefaultParams)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	log.Println("Seeding users...")
	_, err = db.Exec(`
		INSERT INTO users (name, email, password_hash, roles, is_approved)
		VALUES ('Platform Admin', 'super@gstbill.local', $1, '{admin,super_admin}', TRUE)
		ON CONFLICT (email) DO NOTHING;
	`, hash)
	if err != nil {
		log.Printf("Failed to seed super admin: %v", err)
	}

	var ownerID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, roles, business_name, gst_number, business_state, business_pincode, is_approved)
		VALUES ('Rajesh Agarwal', 'rajesh@agarwaltraders.in', $1, '{admin}', 'Agarwal Traders', '27AAPFU0939F1ZV', 'Maharashtra', '400001', TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id;
	`, hash).Scan(&ownerID)
	if err != nil {
		log.Fatalf("Failed to seed business owner: %v", err)
	}
	return ownerID
}

func seedCustomers(db *sql.DB, ownerID string) {
	customers := []struct {
		Name    string
		Email   string
		Phone   string
		GSTIN   string
		Company string
		State   string
		Pincode string
	}{
		{"Sharma Pipes & Fittings", "accounts@sharmapipes.in", "+919812345670", "07AABCS1234E1Z5", "Sharma Pipes Pvt Ltd", "Delhi", "110001"},
		{"Patel Hardware Mart", "patel.hw@example.com", "+919822334455", "24AACCP4567D1ZK", "Patel Hardware Mart", "Gujarat", "380001"},
		{"Kumar Electricals", "kumar.elec@example.com", "+919833445566", "", "", "Maharashtra", "411001"},
		{"Reddy Constructions", "billing@reddyconstructions.in", "+919844556677", "36AADCR8901F1ZT", "Reddy Constructions LLP", "Telangana", "500001"},
		{"Walk-in Customer", "", "", "", "", "Maharashtra", ""},
	}

	log.Println("Seeding customers...")
	for _, c := range customers {
		_, err := db.Exec(`
			INSERT INTO customers (user_id, name, email, phone, gstin, company_name, state, pincode)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
			ON CONFLICT DO NOTHING;
		`, ownerID, c.Name, c.Email, c.Phone, c.GSTIN, c.Company, c.State, c.Pincode)
		if err != nil {
			log.Printf("Failed to seed customer %s: %v", c.Name, err)
		}
	}
}

func seedProducts(db *sql.DB, ownerID string) {
	products := []struct {
		Name     string
		SKU      string
		HSN      string
		Category string
		Brand    string
		Price    int64
		Purchase int64
		RateBps  int32
		Stock    int32
		MinStock int32
		Unit     string
	}{
		{"PVC Pipe 2 inch (3m)", "PVC-2IN-3M", "3917", "Pipes", "Supreme", 45000, 36000, 1800, 120, 20, "PCS"},
		{"PVC Pipe 4 inch (3m)", "PVC-4IN-3M", "3917", "Pipes", "Supreme", 82000, 65000, 1800, 80, 15, "PCS"},
		{"Copper Wire 1.5 sqmm (90m)", "CU-WIRE-1.5", "8544", "Electricals", "Polycab", 165000, 139000, 1800, 45, 10, "ROLL"},
		{"Copper Wire 2.5 sqmm (90m)", "CU-WIRE-2.5", "8544", "Electricals", "Polycab", 255000, 214000, 1800, 30, 10, "ROLL"},
		{"MCB 16A Single Pole", "MCB-16A-SP", "8536", "Electricals", "Havells", 28500, 21000, 1800, 200, 30, "PCS"},
		{"Cement OPC 53 Grade", "CEM-OPC53", "2523", "Construction", "UltraTech", 42000, 36500, 2800, 500, 100, "BAG"},
		{"TMT Bar 12mm", "TMT-12MM", "7214", "Construction", "Tata Tiscon", 78000, 70000, 1800, 350, 50, "PCS"},
		{"Wall Putty 40kg", "PUTTY-40KG", "3214", "Paints", "Birla White", 95000, 81000, 1800, 60, 12, "BAG"},
		{"Exterior Emulsion 20L", "PAINT-EXT-20L", "3209", "Paints", "Asian Paints", 680000, 590000, 1800, 25, 5, "CAN"},
		{"Teak Plywood 19mm (8x4)", "PLY-TEAK-19", "4412", "Wood", "Century", 385000, 330000, 1800, 40, 8, "SHEET"},
	}

	log.Println("Seeding products...")
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (user_id, name, sku, hsn_code, category, brand, price, purchase_price, gst_rate_bps, stock_quantity, min_stock_level, unit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (sku) DO UPDATE SET price = EXCLUDED.price, stock_quantity = EXCLUDED.stock_quantity;
		`, ownerID, p.Name, p.SKU, p.HSN, p.Category, p.Brand, p.Price, p.Purchase, p.RateBps, p.Stock, p.MinStock, p.Unit)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.SKU, err)
		}
	}
}
