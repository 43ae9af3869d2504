package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/storeqa/storefront-suite/internal/cli"
	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/database"
	"github.com/storeqa/storefront-suite/internal/gorest"
	"github.com/storeqa/storefront-suite/internal/models"
	"github.com/storeqa/storefront-suite/internal/productinfo"
	"github.com/storeqa/storefront-suite/internal/repository"
)

var version = "0.1.0"

// openStore returns the Postgres store when POSTGRES_* is set and the
// in-memory store otherwise. The returned func releases the store.
func openStore() (internalcli.Store, func(), error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if errors.Is(err, config.ErrPostgresNotConfigured) {
		log.Println("Postgres not configured, using in-memory store")
		return repository.NewMemoryStore(models.SeedProducts()), func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := database.Seed(db, models.SeedProducts()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return repository.NewPostgresStore(db), func() { db.Close() }, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront and users API",
		Action: func(c *cli.Context) error {
			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			deps, err := internalcli.BuildServerDependencies(c.Context, config.LoadServerConfig(os.Getenv), store)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// ProductCommand returns the product command
func ProductCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "Search the storefront and print a product's information",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "search term", Required: true},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "exact product name to open", Required: true},
			&cli.BoolFlag{Name: "html", Usage: "parse the pages over HTTP instead of driving a browser"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid suite configuration: %w", err)
			}
			if cfg.Local() {
				return fmt.Errorf("STORE_BASE_URL is required")
			}

			query := internalcli.ProductQuery{SearchTerm: c.String("search"), ProductName: c.String("name")}
			var info productinfo.Info
			if c.Bool("html") {
				info, err = internalcli.ScrapeProduct(c.Context, &http.Client{Timeout: cfg.Timeout}, cfg.BaseURL, query)
			} else {
				info, err = internalcli.BrowseProduct(*cfg, query)
			}
			if err != nil {
				return err
			}
			return internalcli.WriteProductReport(c.App.Writer, info)
		},
	}
}

// UsersCommand returns the users command
func UsersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Run the create/get/update/delete lifecycle against the users API",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadGorestConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid users API configuration: %w", err)
			}
			_, err = internalcli.RunUserLifecycle(c.Context, gorest.NewClient(cfg, nil), c.App.Writer)
			return err
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storeqa",
		Usage:   "Storefront QA tooling",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			ProductCommand(),
			UsersCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
