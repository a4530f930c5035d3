package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL
// instance at localhost:3306 with a database named 'qrmenu_test';
// tests skip when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/qrmenu_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "MenuItems", "Categories", "Tables", "Places"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPlacesTable := `
	CREATE TABLE IF NOT EXISTS Places (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ownerId BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_owner (ownerId)
	)`

	createTablesTable := `
	CREATE TABLE IF NOT EXISTS Tables (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		placeId BIGINT UNSIGNED NOT NULL,
		label VARCHAR(100) NOT NULL,
		FOREIGN KEY (placeId) REFERENCES Places(id) ON DELETE CASCADE,
		INDEX idx_place (placeId)
	)`

	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS Categories (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		placeId BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		FOREIGN KEY (placeId) REFERENCES Places(id) ON DELETE CASCADE,
		INDEX idx_place (placeId)
	)`

	createMenuItemsTable := `
	CREATE TABLE IF NOT EXISTS MenuItems (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		placeId BIGINT UNSIGNED NOT NULL,
		categoryId BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		isAvailable TINYINT(1) NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (placeId) REFERENCES Places(id) ON DELETE CASCADE,
		FOREIGN KEY (categoryId) REFERENCES Categories(id) ON DELETE CASCADE,
		INDEX idx_place (placeId),
		INDEX idx_category (categoryId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		placeId BIGINT UNSIGNED NOT NULL,
		tableId BIGINT UNSIGNED NULL,
		tableLabel VARCHAR(100) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		customerNotes TEXT,
		totalAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (placeId) REFERENCES Places(id) ON DELETE CASCADE,
		FOREIGN KEY (tableId) REFERENCES Tables(id) ON DELETE SET NULL,
		INDEX idx_place (placeId),
		INDEX idx_status (placeId, status)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId BIGINT UNSIGNED NOT NULL,
		menuItemId BIGINT UNSIGNED NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		unitPrice DECIMAL(10,2) NOT NULL,
		specialRequest VARCHAR(500) NOT NULL DEFAULT '',
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		FOREIGN KEY (menuItemId) REFERENCES MenuItems(id),
		INDEX idx_order (orderId),
		INDEX idx_menu_item (menuItemId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Places", createPlacesTable},
		{"Tables", createTablesTable},
		{"Categories", createCategoriesTable},
		{"MenuItems", createMenuItemsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SeedPlace inserts a place and returns its id.
func SeedPlace(t *testing.T, db *sql.DB, ownerID uint64, name string) uint64 {
	result, err := db.Exec(`INSERT INTO Places (ownerId, name) VALUES (?, ?)`, ownerID, name)
	if err != nil {
		t.Fatalf("seeding place: %v", err)
	}
	id, _ := result.LastInsertId()
	return uint64(id)
}

// SeedTable inserts a table for a place and returns its id.
func SeedTable(t *testing.T, db *sql.DB, placeID uint64, label string) uint64 {
	result, err := db.Exec(`INSERT INTO Tables (placeId, label) VALUES (?, ?)`, placeID, label)
	if err != nil {
		t.Fatalf("seeding table: %v", err)
	}
	id, _ := result.LastInsertId()
	return uint64(id)
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, db *sql.DB, placeID uint64, name string) uint64 {
	result, err := db.Exec(`INSERT INTO Categories (placeId, name) VALUES (?, ?)`, placeID, name)
	if err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	id, _ := result.LastInsertId()
	return uint64(id)
}

// SeedMenuItem inserts a menu item and returns its id. available nil
// leaves the availability flag NULL.
func SeedMenuItem(t *testing.T, db *sql.DB, placeID, categoryID uint64, name string, price float64, available *bool) uint64 {
	result, err := db.Exec(
		`INSERT INTO MenuItems (placeId, categoryId, name, description, price, isAvailable) VALUES (?, ?, ?, '', ?, ?)`,
		placeID, categoryID, name, price, available,
	)
	if err != nil {
		t.Fatalf("seeding menu item: %v", err)
	}
	id, _ := result.LastInsertId()
	return uint64(id)
}
