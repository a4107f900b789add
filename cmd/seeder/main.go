package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/database"
	"github.com/mauv0809/padel-league/internal/league"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "league.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	numPlayers := flag.Int("players", 12, "number of players to create")
	numMatches := flag.Int("matches", 500, "number of matches to record")
	flag.Parse()
	if *numPlayers < 4 {
		log.Fatal("At least four players are needed for a match")
	}

	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	store := club.New(db)

	names := make([]string, 0, *numPlayers)
	for i := range *numPlayers {
		name := fmt.Sprintf("Seeder Player %02d", i+1)
		if _, err := store.AddPlayer(name, ""); err != nil {
			log.Warn("Could not add player, assuming it exists", "player", name, "error", err)
		}
		names = append(names, name)
	}
	log.Info("Ensured seeder players exist.", "count", len(names))

	policy := league.DefaultPolicy()
	startTime := time.Now()
	for i := range *numMatches {
		in := randomMatch(names)
		outcome, err := league.Score(in, policy)
		if err != nil {
			log.Fatalf("Generated an invalid match: %s", err)
		}
		outcome.Result.ID = uuid.NewString()
		outcome.Result.Source = league.SourceManual
		if err := store.RecordMatch(outcome.Result, outcome.Deltas); err != nil {
			log.Fatalf("Failed to record match: %s", err)
		}
		if (i+1)%100 == 0 {
			log.Info("Recorded matches", "completed", i+1, "total", *numMatches)
		}
	}

	log.Info("Successfully seeded the league.", "matches", *numMatches, "duration", time.Since(startTime))
}

// randomMatch draws four distinct players and a valid best-of-three score
// won by the first pair.
func randomMatch(names []string) league.MatchInput {
	picked := rand.Perm(len(names))[:4]
	in := league.MatchInput{
		Winners:  [2]string{names[picked[0]], names[picked[1]]},
		Losers:   [2]string{names[picked[2]], names[picked[3]]},
		PlayedAt: time.Now().UTC().Add(-time.Duration(rand.Intn(365*24)) * time.Hour),
	}
	won := func() league.SetScore { return league.SetScore{A: 6, B: rand.Intn(5)} }
	lost := func() league.SetScore { return league.SetScore{A: rand.Intn(5), B: 6} }
	if rand.Intn(2) == 0 {
		in.Sets = []league.SetScore{won(), won()}
	} else {
		in.Sets = []league.SetScore{won(), lost(), {A: 7, B: 5}}
	}
	return in
}
