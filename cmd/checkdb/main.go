// Command checkdb connects to the configured PostgreSQL database and lists its tables with row counts.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/lib/pq"

	"github.com/nexpertia/marketplace-api/config"
)

func main() {
	if err := config.LoadENV(); err != nil {
		fmt.Fprintf(os.Stderr, "checkdb: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkdb: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg.Database); err != nil {
		fmt.Fprintf(os.Stderr, "checkdb: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.DatabaseConfig) error {
	if cfg.Driver != "postgres" {
		return fmt.Errorf("checkdb only supports postgres, DB_DRIVER is %q", cfg.Driver)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	rows, err := db.Query(`SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fmt.Printf("Connected to %s@%s:%s/%s\n", cfg.User, cfg.Host, cfg.Port, cfg.Name)
	if len(tables) == 0 {
		fmt.Println("No tables found. Start the API or run cmd/seed to migrate.")
		return nil
	}

	for _, table := range tables {
		var count int64
		query := "SELECT COUNT(*) FROM " + pq.QuoteIdentifier(table)
		if err := db.QueryRow(query).Scan(&count); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		fmt.Printf("  %-28s %d\n", table, count)
	}

	return nil
}
