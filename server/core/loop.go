package core

import (
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop drives the server at a fixed tick rate. The simulation clock
// advances by a whole tick each time, whatever the wall clock did.
type GameLoop struct {
	server   *Server
	tickRate int
	dt       int64 // ms per tick
	stopChan chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		dt:       int64(1000 / tickRate),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks until Stop. It returns at once if Stop already ran.
func (g *GameLoop) Run() {
	g.mu.Lock()
	if g.stopped || g.running {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.mu.Unlock()
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[host] game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[host] game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends Run and waits for the tick in progress to finish. It is safe to
// call more than once, and before Run.
func (g *GameLoop) Stop() {
	g.mu.Lock()
	if !g.stopped {
		g.stopped = true
		close(g.stopChan)
	}
	running := g.running
	g.mu.Unlock()
	if running {
		<-g.done
	}
}

func (g *GameLoop) tick() {
	g.server.ProcessCommands()
	g.server.Step(g.dt)

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[host] sync error: %v", err)
	}
}
