// Copyright 2025 Genmind Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	genmind "github.com/Jung-Seung-hwa/genmind"
	"github.com/Jung-Seung-hwa/genmind/ai"
	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/extract"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the database directory",
		Required: true,
	}
	aiFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible API host URL",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API key, or \"none\" for local services",
			EnvVars: []string{"OPENAI_API_KEY"},
			Value:   "none",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout for each model and embedding call",
			Value: 120 * time.Second,
		},
	}
	tenantFlag := &cli.StringFlag{
		Name:     "tenant",
		Aliases:  []string{"t"},
		Usage:    "Tenant domain",
		Required: true,
	}

	app := &cli.App{
		Name:  "genmind",
		Usage: "Document-to-FAQ knowledge base with retrieval-augmented answering",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Extract FAQ candidates from a PDF without persisting them",
				ArgsUsage: "<pdf-file>",
				Action:    extractCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-items",
						Usage: "Maximum items requested per section",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Minimum confidence for accepted items",
						Value: 0.0,
					},
				}, aiFlags...),
			},
			{
				Name:      "ingest",
				Usage:     "Extract a PDF and commit the result for a tenant",
				ArgsUsage: "<pdf-file>",
				Action:    ingestCommand,
				Flags:     append([]cli.Flag{dbFlag, tenantFlag}, aiFlags...),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against a tenant's FAQ records",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					tenantFlag,
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of index entries retrieved per question",
						Value: 5,
					},
				}, aiFlags...),
			},
			{
				Name:   "rebuild-index",
				Usage:  "Rebuild the vector index from the record store",
				Action: rebuildIndexCommand,
				Flags:  append([]cli.Flag{dbFlag, tenantFlag}, aiFlags...),
			},
			{
				Name:      "upsert-index",
				Usage:     "Refresh specific record ids in the vector index",
				ArgsUsage: "<record-id>...",
				Action:    upsertIndexCommand,
				Flags:     append([]cli.Flag{dbFlag}, aiFlags...),
			},
			{
				Name:   "top",
				Usage:  "Show a tenant's most viewed FAQ records",
				Action: topCommand,
				Flags: []cli.Flag{
					dbFlag,
					tenantFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of distinct view-count ranks to show",
						Value: 10,
					},
				},
			},
			{
				Name:  "tenant",
				Usage: "Manage tenants",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Register a tenant",
						Action: tenantAddCommand,
						Flags: []cli.Flag{
							dbFlag,
							&cli.StringFlag{
								Name:     "domain",
								Usage:    "Tenant domain",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "name",
								Usage: "Company name",
							},
							&cli.StringFlag{
								Name:  "email",
								Usage: "Contact email",
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List registered tenants",
						Action: tenantListCommand,
						Flags:  []cli.Flag{dbFlag},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithToken(c.String("token")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithTimeout(c.Duration("timeout")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func openDatabase(c *cli.Context) (*genmind.Database, error) {
	cfg, err := aiConfigFromFlags(c)
	if err != nil {
		return nil, err
	}
	return genmind.NewDatabase(c.String("db"), genmind.WithAIConfig(cfg))
}

func resolveTenant(ctx context.Context, db *genmind.Database, c *cli.Context) (*core.Tenant, error) {
	tenant, err := db.ResolveTenant(ctx, c.String("tenant"))
	if err != nil {
		return nil, fmt.Errorf("unknown tenant %q: %w", c.String("tenant"), err)
	}
	return tenant, nil
}

func extractCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one PDF file argument")
	}
	path := c.Args().First()

	cfg, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}
	extractCfg := extract.NewConfig(
		extract.WithMaxItemsPerSection(c.Int("max-items")),
		extract.WithMinConfidence(c.Float64("min-confidence")),
	)

	db, err := genmind.NewDatabase(c.String("db"),
		genmind.WithAIConfig(cfg),
		genmind.WithExtractConfig(extractCfg),
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	extractor, err := db.NewExtractor()
	if err != nil {
		return err
	}

	result, err := extractor.ExtractFile(c.Context, path, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	for i, item := range result.Items {
		fmt.Printf("%d. Q: %s\n   A: %s\n", i+1, item.Question, item.Answer)
		if item.RefArticle != "" {
			fmt.Printf("   근거: %s\n", item.RefArticle)
		}
		fmt.Printf("   confidence: %.2f\n", item.Confidence)
	}
	fmt.Fprintf(os.Stderr, "\n%d items from %d sections (%d sections failed)\n",
		len(result.Items), result.Sections, result.FailedSections)
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one PDF file argument")
	}
	path := c.Args().First()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenant, err := resolveTenant(c.Context, db, c)
	if err != nil {
		return err
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	saved, err := pipeline.IngestDocument(c.Context, tenant.Id, path, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Committed %d records for %s\n", len(saved), tenant.Domain)
	for _, record := range saved {
		fmt.Printf("%d\t%s\n", record.Id, record.Question)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one question argument")
	}
	question := c.Args().First()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenant, err := resolveTenant(c.Context, db, c)
	if err != nil {
		return err
	}

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}

	answer, err := engine.Ask(c.Context, tenant.Id, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println("\n출처:")
		for _, source := range answer.Sources {
			if source.RefArticle != "" {
				fmt.Printf("- %s (%s)\n", source.Title, source.RefArticle)
			} else {
				fmt.Printf("- %s\n", source.Title)
			}
		}
	}
	return nil
}

func rebuildIndexCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenant, err := resolveTenant(c.Context, db, c)
	if err != nil {
		return err
	}

	count, err := db.Synchronizer().Rebuild(c.Context, tenant.Id)
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d records for %s\n", count, tenant.Domain)
	return nil
}

func upsertIndexCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected at least one record id argument")
	}
	ids := make([]core.ID, c.NArg())
	for i, arg := range c.Args().Slice() {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q: %w", arg, err)
		}
		ids[i] = core.ID(id)
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	count, err := db.Synchronizer().UpsertByIDs(c.Context, ids...)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d of %d records\n", count, len(ids))
	return nil
}

func topCommand(c *cli.Context) error {
	db, err := genmind.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenant, err := resolveTenant(c.Context, db, c)
	if err != nil {
		return err
	}

	ranked, err := db.FAQRepository().TopViewed(c.Context, tenant.Id, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	for _, r := range ranked {
		fmt.Printf("#%d\t%d views\t%s\n", r.Rank, r.Record.Views, r.Record.Question)
	}
	return nil
}

func tenantAddCommand(c *cli.Context) error {
	db, err := genmind.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenant, err := db.TenantRepository().AddTenant(c.Context, &core.Tenant{
		Domain: c.String("domain"),
		Name:   c.String("name"),
		Email:  c.String("email"),
	})
	if err != nil {
		return fmt.Errorf("failed to add tenant: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Added tenant %s (id %d)\n", tenant.Domain, tenant.Id)
	return nil
}

func tenantListCommand(c *cli.Context) error {
	db, err := genmind.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tenants, err := db.TenantRepository().ListTenants(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	for _, tenant := range tenants {
		fmt.Printf("%d\t%s\t%s\t%s\n", tenant.Id, tenant.Domain, tenant.Name, tenant.Email)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
