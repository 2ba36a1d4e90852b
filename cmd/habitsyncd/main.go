package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/ozankoca/habitd/internal/syncserver"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	dbPath := flag.String("db", "habitsyncd.db", "sqlite database path")
	flag.Parse()

	repo, err := syncserver.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("habitsyncd: open database: %v", err)
	}
	defer repo.Close()

	log.Printf("habitsyncd listening on %s (db %s)", *addr, *dbPath)
	if err := http.ListenAndServe(*addr, syncserver.NewServer(repo)); err != nil {
		log.Fatalf("habitsyncd: %v", err)
	}
}
