package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/config"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/database"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// seederConfig is the subset of the server configuration the seeder needs.
type seederConfig struct {
	DBName string             `env:"DB_NAME" envDefault:"valorant.db"`
	Turso  config.TursoConfig `envPrefix:"TURSO_"`
}

var (
	numPlayers int
	numMatches int
	seed       uint64
	eventName  string
)

var rootCmd = &cobra.Command{
	Use:          "seeder",
	Short:        "Fill the database with fake players and matches",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numPlayers, "players", 20, "Number of players to register")
	rootCmd.Flags().IntVar(&numMatches, "matches", 50, "Number of matches to play")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")
	rootCmd.Flags().StringVar(&eventName, "event", "", "Create an event with this name and attach every match to it")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	var cfg seederConfig
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	if numPlayers < stats.MatchSize {
		return fmt.Errorf("need at least %d players, got %d", stats.MatchSize, numPlayers)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("Seeding", "players", numPlayers, "matches", numMatches, "seed", seed)

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return err
	}
	defer teardown()

	store := league.New(db)
	updater := stats.NewUpdater(store, metrics.NewService(prometheus.NewRegistry()))
	faker := gofakeit.New(seed)

	var eventID string
	if eventName != "" {
		event, err := store.CreateEvent(ctx, league.Event{Name: eventName, StartsAt: time.Now().Unix()})
		if err != nil {
			return err
		}
		eventID = event.ID
	}

	roster, err := registerPlayers(ctx, store, faker, numPlayers)
	if err != nil {
		return err
	}

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		rec := fakeMatch(faker, roster)
		rec.EventID = eventID
		if err := updater.ApplyMatch(ctx, rec); err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}
	}
	log.Info("Seeding complete", "matches", numMatches, "duration", time.Since(startTime))
	return nil
}
