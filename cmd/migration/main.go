package main

import (
	"context"
	"flag"
	"os"

	"github.com/jmoiron/sqlx"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/config"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/repository"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
// > DBDRIVER=sqlite3 DBNAME=contacts go run main.go -file=../../scripts/database.sqlite.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	log, err := logger.New(false)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("could not load configuration", "error", err)
	}
	sqlDB, err := repository.CreateDatabase(cfg.Database)
	if err != nil {
		log.Fatal("could not open database", "error", err)
	}
	db := sqlx.NewDb(sqlDB, cfg.Database.Driver)
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		log.Fatal("could not open sql file", "file", *filePtr, "error", err)
	}
	defer readFile.Close()

	count, err := repository.ExecScript(context.Background(), db, readFile)
	if err != nil {
		log.Fatal("migration failed", "file", *filePtr, "executed", count, "error", err)
	}
	log.Info("migration done", "file", *filePtr, "statements", count)
}
