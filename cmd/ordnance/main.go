// Command ordnance is a headless peer. It joins a host, mirrors the match
// into a local simulation and can hold down a trigger for load testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/ordnance/network"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/protocol"
)

func main() {
	address := flag.String("address", "localhost:7373", "Host address")
	name := flag.String("name", "peer", "Player name")
	version := flag.String("version", "", "Client version sent to the host")
	team := flag.Int("team", 0, "Team number (0 = none)")
	assetsDir := flag.String("assets", "assets", "Directory containing levels/")
	gun := flag.Int("gun", int(catalog.GunScatter), "Gun to select after joining")
	fire := flag.Bool("fire", false, "Hold the primary trigger toward the arena centre")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}
	if err := catalog.Validate(); err != nil {
		log.Fatalf("Catalog is inconsistent: %v", err)
	}

	client := network.NewClient()
	client.Connect(*address, messages.JoinRequest{PlayerName: *name, Version: *version, Team: *team})

	if err := waitForJoin(client, 10*time.Second); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	arena, err := leveldata.LoadArena(os.DirFS(filepath.Join(*assetsDir, "levels")), client.Level()+".tmx")
	if err != nil {
		log.Fatalf("Failed to load level %q: %v", client.Level(), err)
	}
	session := network.NewSession(client, arena, uint64(time.Now().UnixNano()))
	client.SendGunSelect(messages.GunSelectEvent{Actor: client.ClientNum(), Gun: catalog.Gun(*gun)})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tickRate := client.TickRate()
	if tickRate <= 0 {
		tickRate = 30
	}
	dt := int64(1000 / tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	centre := gamemath.Vec3{arena.WorldWidth() / 2, arena.WorldHeight() / 2, arena.Floor + 16}
	log.Printf("Playing %s as client %d (match %s)", client.Level(), client.ClientNum(), client.MatchID())
	for {
		select {
		case <-sigChan:
			log.Println("Leaving match...")
			client.Disconnect()
			return
		case <-ticker.C:
			if st := client.State(); st == network.StateDisconnected || st == network.StateError {
				log.Fatalf("Lost connection: %v", client.LastError())
			}
			if *fire {
				if err := session.Fire(catalog.ActPrimary, centre); err != nil {
					log.Printf("Failed to send input: %v", err)
				}
			}
			session.Step(dt)
		}
	}
}

func waitForJoin(client *network.Client, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		switch client.State() {
		case network.StateJoinedGame:
			return nil
		case network.StateError:
			return client.LastError()
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("no answer from host within %s", timeout)
}
