package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/replay"
	"github.com/automoto/ordnance/server/core"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/protocol"
	"github.com/automoto/ordnance/stats"
)

func main() {
	port := flag.Uint("port", config.Server.Port, "Server port")
	tickRate := flag.Int("tickrate", config.Server.TickRate, "Server tick rate (updates per second)")
	name := flag.String("name", config.Server.Name, "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	assetsDir := flag.String("assets", config.Server.LevelsDir, "Directory containing levels/")
	levelName := flag.String("level", config.Server.Level, "Level to host (default: first by name)")
	teams := flag.Bool("teams", false, "Team play: no damage between team mates")
	mayhem := flag.Bool("mayhem", false, "Mayhem rules")
	replayDir := flag.String("replays", config.Server.ReplayDir, "Directory to record replays into (empty = off)")
	statsApp := flag.String("stats", config.Server.StatsAppName, "Application name for the persistent stats ledger (empty = off)")
	masterURL := flag.String("master", "", "Master server URL to list on (empty = unlisted)")
	address := flag.String("address", "", "Public address advertised to the master server")
	region := flag.String("region", "", "Region advertised to the master server")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}
	if err := catalog.Validate(); err != nil {
		log.Fatalf("Catalog is inconsistent: %v", err)
	}

	levels, names, err := core.LoadLevels(*assetsDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	if len(names) == 0 {
		log.Fatalf("No levels found under %s/levels", *assetsDir)
	}
	if *levelName == "" {
		*levelName = names[0]
	}
	level, ok := levels[*levelName]
	if !ok {
		log.Fatalf("Unknown level %q (have %v)", *levelName, names)
	}

	opts := core.Options{
		TickRate: *tickRate,
		Name:     *name,
		Version:  *version,
		Level:    level,
		Rules:    combat.MatchRules{Teams: *teams, Mayhem: *mayhem},
	}
	if *statsApp != "" {
		ledger, err := stats.Open(*statsApp)
		if err != nil {
			log.Fatalf("Failed to open stats ledger: %v", err)
		}
		opts.Ledger = ledger
	}
	if *replayDir != "" {
		w, manifest, err := replay.NewWriter(*replayDir, *name, level.Name, nil)
		if err != nil {
			log.Fatalf("Failed to start replay: %v", err)
		}
		log.Printf("Recording replay %s to %s", manifest.Session, w.Dir())
		opts.Replay = w
	}

	server, err := core.NewServer(opts)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reg *core.Registration
	if *masterURL != "" {
		reg = core.NewRegistration(*masterURL, core.Advert{
			Name:       *name,
			Address:    *address,
			Version:    *version,
			Region:     *region,
			MaxPlayers: config.Server.MaxPlayers,
		}, server)
		reg.Start(ctx)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Ordnance server %q on port %d (level: %s, tick rate: %d/s, version: %s)",
		*name, *port, level.Name, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
