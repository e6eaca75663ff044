package main

import (
	"flag"
	"fmt"
	"os"

	"medmate/internal/db"

	"github.com/caarlos0/env/v6"
)

type config struct {
	PostgresqlURL  string `env:"POSTGRESQL_URL,notEmpty"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

func main() {
	down := flag.Int("down", 0, "number of migrations to revert instead of applying")
	flag.Parse()

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var err error
	if *down > 0 {
		err = db.RollbackMigrations(cfg.PostgresqlURL, cfg.MigrationsPath, *down)
	} else {
		err = db.ApplyMigrations(cfg.PostgresqlURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success.")
}
