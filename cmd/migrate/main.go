package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udev-hq/intern-portal-backend/internal/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

	args := flag.Args()
	command := "up"
	var rest []string
	if len(args) > 0 {
		command = args[0]
		rest = args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set dialect:", err)
	}

	if err := goose.Run(command, db, *dir, rest...); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}
}
