// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"inkwell/internal/bootstrap"
	"inkwell/internal/config"
	"inkwell/internal/seed"
)

func main() {
	preset := flag.String("preset", "", "path to a YAML seed preset")
	users := flag.Int("users", 0, "number of users to create (overrides preset)")
	clean := flag.Bool("clean", false, "remove existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Close(ctx); err != nil {
			log.Printf("Runtime shutdown error: %v", err)
		}
	}()

	opts := seed.DefaultOptions()
	if *preset != "" {
		opts, err = seed.LoadOptions(*preset)
		if err != nil {
			log.Fatalf("Failed to load seed preset: %v", err)
		}
	}
	if *users > 0 {
		opts.NumUsers = *users
	}
	if *clean {
		opts.ShouldClean = true
	}

	if err := seed.Run(rt.DB, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
