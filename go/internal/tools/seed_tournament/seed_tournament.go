package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openrally/courtside/go/internal/dbconfig"
)

// Seed mirrors the JSON fixture layout
type Seed struct {
	Tournament struct {
		Name     string `json:"name"`
		Sport    string `json:"sport"`
		BestOf   int    `json:"best_of"`
		Location string `json:"location"`
	} `json:"tournament"`
	Courts []struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"courts"`
	Teams []struct {
		Name    string          `json:"name"`
		Code    string          `json:"code"`
		Players json.RawMessage `json:"players"`
	} `json:"teams"`
}

func main() {
	path := "go/internal/assets/tournament.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the JSON fixture
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	// 3) Insert the tournament at sequence 0
	tournamentID := uuid.New()
	_, err = pool.Exec(ctx, `
        INSERT INTO tournaments (id, name, sport, best_of, location, sequence, created_at)
        VALUES ($1,$2,$3,$4,$5,0,$6)
    `, tournamentID, seed.Tournament.Name, seed.Tournament.Sport,
		seed.Tournament.BestOf, seed.Tournament.Location, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert tournament: %v\n", err)
		os.Exit(1)
	}

	// 4) Courts and teams with starting version 1
	for _, c := range seed.Courts {
		_, err := pool.Exec(ctx, `
            INSERT INTO courts (id, tournament_id, name, location, status, version, updated_at)
            VALUES ($1,$2,$3,$4,'idle',1,$5)
        `, uuid.New(), tournamentID, c.Name, c.Location, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert court %q: %v\n", c.Name, err)
			os.Exit(1)
		}
	}

	for _, t := range seed.Teams {
		players := t.Players
		if len(players) == 0 {
			players = json.RawMessage("[]")
		}
		_, err := pool.Exec(ctx, `
            INSERT INTO teams (id, tournament_id, name, code, players, version, created_at)
            VALUES ($1,$2,$3,$4,$5,1,$6)
        `, uuid.New(), tournamentID, t.Name, t.Code, players, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert team %q: %v\n", t.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded tournament %s (%d courts, %d teams)\n",
		tournamentID, len(seed.Courts), len(seed.Teams))
}
