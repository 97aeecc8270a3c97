package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Haricane11/OptiWareUi-sub000/internal/config"
	"github.com/Haricane11/OptiWareUi-sub000/internal/database"
	"github.com/Haricane11/OptiWareUi-sub000/internal/fixture"
	"github.com/Haricane11/OptiWareUi-sub000/internal/repository"
	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
)

const defaultFixture = "fixtures/demo.toml"

// seed_demo loads a floor fixture into the database and bulk-generates the
// racks of every zone that declares generator parameters.
//
//	go run ./cmd/seed_demo [fixture.toml]
func main() {
	log.Info("🌱 Floor-plan demo seeder")

	path := defaultFixture
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("❌ Failed to load layout rules: %v", err)
	}

	fx, err := fixture.Load(path)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := repository.New(db.DB)

	// Run migrations first
	log.Info("🔨 Running database migrations...")
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	built := fx.Build(rules)
	if err := seed(ctx, repo, built); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Infof("📍 Warehouse %q with floor %q created", built.Warehouse.Name, built.Floor.Name)

	// Generate racks through the editing service so validation matches the editor
	svc := floorplan.NewService(repo, floorplan.Options{Rules: rules, Logger: log.Default()})
	total := 0
	for _, zone := range built.Floor.Zones {
		params, ok := built.Generators[zone.ID]
		if !ok {
			continue
		}
		res, err := svc.GenerateZone(ctx, zone.ID, params)
		if err != nil {
			log.Fatalf("❌ Generating zone %q: %v", zone.ZoneName, err)
		}
		total += res.Produced()
	}

	log.Infof("✅ Demo data created: %d zones, %d areas, %d shelves (floor id %s)",
		len(built.Floor.Zones), len(built.Floor.Areas), total, built.Floor.ID)
}

func seed(ctx context.Context, repo *repository.Gorm, b fixture.Built) error {
	w := b.Warehouse
	if err := repo.CreateWarehouse(ctx, &w); err != nil {
		return err
	}
	f := b.Floor
	if err := repo.CreateFloor(ctx, &f); err != nil {
		return err
	}
	for i := range b.Floor.Zones {
		if err := repo.CreateZone(ctx, &b.Floor.Zones[i]); err != nil {
			return err
		}
	}
	for i := range b.Floor.Areas {
		if err := repo.CreateArea(ctx, &b.Floor.Areas[i]); err != nil {
			return err
		}
	}
	return nil
}
