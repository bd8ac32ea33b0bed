// Command importer imports saved listing pages from disk and prints the
// batch result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dominium-listings/internal/app"
	"dominium-listings/internal/models"
	"dominium-listings/pkg/config"
	"dominium-listings/pkg/logger"

	"github.com/joho/godotenv"
)

const clientKey = "cli"

func main() {
	configPath := flag.String("config", "", "path to the YAML config (defaults to CONFIG_PATH or configs/config.yaml)")
	geocode := flag.Bool("geocode", false, "resolve coordinates for listings without them")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import deadline")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] page.html [page.html ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.GlobalLogger.Fatalf("Failed to load config: %v", err)
	}
	// stdout carries the JSON result
	logger.InitLogger(os.Stderr, cfg.Log.Level)

	docs, err := readDocuments(flag.Args())
	if err != nil {
		logger.GlobalLogger.Fatalf("%v", err)
	}

	c, err := app.Build(cfg)
	if err != nil {
		logger.GlobalLogger.Fatalf("Failed to initialize services: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := c.Importer.ImportDocuments(ctx, clientKey, docs, models.ImportOptions{Geocode: *geocode})
	if err != nil {
		c.Close()
		logger.GlobalLogger.Fatalf("Import failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		logger.GlobalLogger.Errorf("Failed to write result: %v", err)
	}

	logger.GlobalLogger.Printf("Imported %d of %d documents", len(result.Created), len(docs))
	if len(result.Errors) > 0 {
		c.Close()
		os.Exit(1)
	}
}

func readDocuments(paths []string) ([]models.RawDocument, error) {
	docs := make([]models.RawDocument, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		docs = append(docs, models.RawDocument{Source: filepath.Base(p), Content: content})
	}
	return docs, nil
}
