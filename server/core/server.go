// Package core is the headless host. It owns the authoritative combat
// simulation, settles every shot its players fire and replicates actors and
// projectiles to peers.
package core

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/automoto/ordnance/archetypes"
	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/replay"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netcomponents"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/automoto/ordnance/stats"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// commandBuffer bounds the queue from router goroutines to the game loop.
const commandBuffer = 256

// Peer is a connected client. *router.NetworkClient satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// Options configures a Server. Replay and Ledger are optional.
type Options struct {
	TickRate int
	Name     string
	Version  string // required client version, empty accepts any
	Level    *Level
	Rules    combat.MatchRules
	Replay   *replay.Writer
	Ledger   *stats.Ledger
	Seed     uint64
}

// player is one joined peer. Fields other than the map entry are only
// touched by the game loop.
type player struct {
	peer      Peer
	name      string
	token     string
	clientNum int
	team      int

	actor   donburi.Entity
	replica donburi.Entity

	lastSeq uint32
	held    catalog.Action
	target  gamemath.Vec3

	// totals already booked to the ledger
	bookedShots  int
	bookedDamage int
}

type death struct {
	victim, killer donburi.Entity
	gibbed         bool
}

// Server manages the match and client connections.
type Server struct {
	world     donburi.World
	sim       *combat.Simulation
	level     *Level
	loop      *GameLoop
	transport *transports.WsServerTransport

	name    string
	version string
	matchID string
	rules   combat.MatchRules
	replay  *replay.Writer
	ledger  *stats.Ledger

	commands chan func()

	mu      sync.RWMutex
	players map[Peer]*player
	tokens  map[string]int // reconnect token -> client number
	nextNum int

	// Owned by the game loop.
	match       donburi.Entity
	projectiles map[donburi.Entity]donburi.Entity // projectile -> replica
	deaths      []death
	outbox      []any
	tick        uint64
}

var _ combat.Network = (*Server)(nil)

// NewServer creates a server for opts.Level and registers its router
// callbacks.
func NewServer(opts Options) (*Server, error) {
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	s.setupRouterCallbacks()
	return s, nil
}

func newServer(opts Options) (*Server, error) {
	if opts.Level == nil {
		return nil, errors.New("server needs a level")
	}
	if opts.TickRate <= 0 {
		opts.TickRate = config.Server.TickRate
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	world := donburi.NewWorld()
	s := &Server{
		world:       world,
		level:       opts.Level,
		name:        opts.Name,
		version:     opts.Version,
		matchID:     uuid.NewString(),
		rules:       opts.Rules,
		replay:      opts.Replay,
		ledger:      opts.Ledger,
		commands:    make(chan func(), commandBuffer),
		players:     make(map[Peer]*player),
		tokens:      make(map[string]int),
		projectiles: make(map[donburi.Entity]donburi.Entity),
	}
	// Hits land here; peers only draw them.
	s.rules.Multiplayer = false

	s.sim = combat.NewSimulation(world, combat.Options{
		Physics:       opts.Level.World,
		Network:       s,
		Rules:         s.rules,
		Seed:          opts.Seed,
		Authoritative: true,
	})
	s.sim.SetSpawnHook(s.onProjectileSpawn)
	s.sim.SetRemoveHook(s.onProjectileRemove)
	s.sim.SetDeathHook(func(victim, killer donburi.Entity, gibbed bool) {
		s.deaths = append(s.deaths, death{victim, killer, gibbed})
	})
	s.loop = NewGameLoop(s, opts.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	match := archetypes.Match.Spawn(world, netcomponents.NetMatch)
	components.Match.SetValue(match, components.MatchData{ID: s.matchID, State: netconfig.MatchStateWaiting})
	s.match = match.Entity()
	if err := srvsync.NetworkSync(world, &s.match, netcomponents.NetMatch); err != nil {
		return nil, fmt.Errorf("sync match: %w", err)
	}
	return s, nil
}

// Start begins the game loop and serves websocket clients on port.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop and saves stats and the replay.
func (s *Server) Stop() {
	s.loop.Stop()
	s.Close()
}

// Close books outstanding stats and closes the ledger and replay sinks.
func (s *Server) Close() {
	s.mu.RLock()
	for _, p := range s.players {
		s.bookStats(p)
	}
	s.mu.RUnlock()

	if s.ledger != nil {
		if err := s.ledger.Flush(); err != nil {
			log.Printf("[host] stats flush failed: %v", err)
		}
	}
	if s.replay != nil {
		if err := s.replay.Close(); err != nil {
			log.Printf("[host] replay close failed: %v", err)
		}
	}
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[host] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[host] client %s disconnected with error: %v", client.Id(), err)
		}
		s.enqueue(func() { s.leave(client) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.join(client, req) })
	})

	router.On(func(client *router.NetworkClient, in messages.FireInput) {
		s.enqueue(func() { s.input(client, in) })
	})

	router.On(func(client *router.NetworkClient, evt messages.GunSelectEvent) {
		s.enqueue(func() { s.selectGun(client, evt) })
	})

	// Peers announce their own shots for each other; the host settles
	// shots from FireInput and drops these.
	router.On(func(_ *router.NetworkClient, _ messages.ShootEvent) {})
	router.On(func(_ *router.NetworkClient, _ messages.ExplodeEvent) {})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[host] client error: %v", err)
	})
}

// enqueue hands cmd to the game loop without blocking the router.
func (s *Server) enqueue(cmd func()) {
	select {
	case s.commands <- cmd:
	default:
		log.Println("[host] command queue full, dropping command")
	}
}

// ProcessCommands runs every queued router command on the loop goroutine.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

// Step advances the match by dt milliseconds.
func (s *Server) Step(dt int64) {
	s.tick++
	s.updateMatch(dt)

	for _, p := range s.playerList() {
		s.sim.FireShot(p.actor, p.target)
	}
	s.sim.TickProjectiles(dt)
	s.sim.UpdateRecoil(dt)

	s.settleDeaths()
	s.updateRespawns(dt)

	s.syncActors()
	s.syncProjectiles()
	s.recordFrame()
	s.flushOutbox()

	if s.ledger != nil && config.Server.StatsFlushTicks > 0 && s.tick%uint64(config.Server.StatsFlushTicks) == 0 {
		if err := s.ledger.Flush(); err != nil {
			log.Printf("[host] stats flush failed: %v", err)
		}
	}
}

func (s *Server) join(peer Peer, req messages.JoinRequest) {
	if s.version != "" && req.Version != s.version {
		s.reject(peer, fmt.Sprintf("version mismatch: server requires %s", s.version))
		return
	}

	s.mu.Lock()
	if _, dup := s.players[peer]; dup {
		s.mu.Unlock()
		return
	}
	if len(s.players) >= config.Server.MaxPlayers {
		s.mu.Unlock()
		s.reject(peer, "server full")
		return
	}
	token := req.ReconnectToken
	num, known := s.tokens[token]
	if !known || s.numTaken(num) {
		num = s.nextNum
		s.nextNum++
		token = uuid.NewString()
		s.tokens[token] = num
	}
	name := req.PlayerName
	if name == "" {
		name = fmt.Sprintf("player%d", num)
	}
	p := &player{peer: peer, name: name, token: token, clientNum: num, team: req.Team, held: catalog.ActIdle}
	s.players[peer] = p
	s.mu.Unlock()

	pos, yaw := s.level.Spawn(num, config.Actor.EyeHeight)
	actor := s.sim.SpawnActor(combat.ActorOptions{
		Name:      name,
		ClientNum: num,
		Pos:       pos,
		Yaw:       yaw,
		Team:      req.Team,
		Gun:       catalog.GunScatter,
	})
	p.actor = actor.Entity()
	p.target = pos

	replica, err := s.replicate(netcomponents.NetActor)
	if err != nil {
		log.Printf("[host] failed to set up network sync for %s: %v", name, err)
	}
	p.replica = replica

	s.matchData().GetPlayerScore(num).Team = req.Team

	accepted := messages.JoinAccepted{
		ClientNum:      num,
		ReconnectToken: token,
		ServerName:     s.name,
		MatchID:        s.matchID,
		Level:          s.level.Name,
		TickRate:       s.loop.tickRate,
		Multiplayer:    true,
		Teams:          s.rules.Teams,
		Mayhem:         s.rules.Mayhem,
	}
	if replica != donburi.Null {
		if id := esync.GetNetworkId(s.world.Entry(replica)); id != nil {
			accepted.NetworkID = *id
		}
	}
	if err := peer.SendMessage(accepted); err != nil {
		log.Printf("[host] failed to accept %s: %v", peer.Id(), err)
	}
	s.record("join", accepted)
	log.Printf("[host] %s joined as client %d", name, num)
}

// numTaken reports whether a joined player already holds num. Callers hold mu.
func (s *Server) numTaken(num int) bool {
	for _, p := range s.players {
		if p.clientNum == num {
			return true
		}
	}
	return false
}

func (s *Server) reject(peer Peer, reason string) {
	log.Printf("[host] rejecting %s: %s", peer.Id(), reason)
	if err := peer.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		log.Printf("[host] failed to reject %s: %v", peer.Id(), err)
	}
}

func (s *Server) leave(peer Peer) {
	s.mu.Lock()
	p, ok := s.players[peer]
	if ok {
		delete(s.players, peer)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	s.bookStats(p)
	s.sim.RemoveActor(p.actor)
	if p.replica != donburi.Null && s.world.Valid(p.replica) {
		s.world.Remove(p.replica)
	}
	log.Printf("[host] %s (client %d) left", p.name, p.clientNum)
}

func (s *Server) input(peer Peer, in messages.FireInput) {
	p := s.playerFor(peer)
	if p == nil || !s.world.Valid(p.actor) {
		return
	}
	if p.lastSeq != 0 && in.Sequence <= p.lastSeq {
		return
	}
	p.lastSeq = in.Sequence

	entry := s.world.Entry(p.actor)
	b := components.Body.Get(entry)
	c := components.Combatant.Get(entry)
	b.Pos = messages.DecodeVec(in.Eye)
	b.Yaw, b.Pitch = in.Yaw, in.Pitch
	c.Crouching = in.Crouching
	p.target = messages.DecodeVec(in.Target)

	// Only edges change the trigger, so semi-automatic guns need a fresh
	// press for every shot.
	if in.Action != p.held && c.Alive() {
		c.Attacking = in.Action
	}
	p.held = in.Action
}

func (s *Server) selectGun(peer Peer, evt messages.GunSelectEvent) {
	if p := s.playerFor(peer); p != nil {
		s.sim.SelectGun(p.actor, evt.Gun)
	}
}

func (s *Server) playerFor(peer Peer) *player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[peer]
}

func (s *Server) playerByNum(num int) *player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.clientNum == num {
			return p
		}
	}
	return nil
}

// playerList returns the joined players ordered by client number.
func (s *Server) playerList() []*player {
	s.mu.RLock()
	out := make([]*player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].clientNum < out[j].clientNum })
	return out
}

// bookStats moves the actor's running totals into the ledger.
func (s *Server) bookStats(p *player) {
	if s.ledger == nil || !s.world.Valid(p.actor) {
		return
	}
	c := components.Combatant.Get(s.world.Entry(p.actor))
	s.ledger.AddShots(p.name, c.TotalShots-p.bookedShots, c.TotalDamage-p.bookedDamage)
	p.bookedShots, p.bookedDamage = c.TotalShots, c.TotalDamage
}

// SendShoot, SendExplode and SendGunSelect broadcast what the simulation
// settled.
func (s *Server) SendShoot(evt messages.ShootEvent) { s.publish("shoot", evt) }

func (s *Server) SendExplode(evt messages.ExplodeEvent) { s.publish("explode", evt) }

func (s *Server) SendGunSelect(evt messages.GunSelectEvent) { s.publish("gunselect", evt) }

func (s *Server) publish(kind string, msg any) {
	s.outbox = append(s.outbox, msg)
	s.record(kind, msg)
}

func (s *Server) record(kind string, msg any) {
	if s.replay == nil {
		return
	}
	if err := s.replay.AppendEvent(s.tick, s.sim.Now(), kind, msg); err != nil && !errors.Is(err, replay.ErrClosed) {
		log.Printf("[host] replay %s event: %v", kind, err)
	}
}

func (s *Server) flushOutbox() {
	if len(s.outbox) == 0 {
		return
	}
	players := s.playerList()
	for _, msg := range s.outbox {
		for _, p := range players {
			if err := p.peer.SendMessage(msg); err != nil {
				log.Printf("[host] send to %s: %v", p.peer.Id(), err)
			}
		}
	}
	s.outbox = s.outbox[:0]
}

func (s *Server) entry(e donburi.Entity) *donburi.Entry {
	if e == donburi.Null || !s.world.Valid(e) {
		return nil
	}
	return s.world.Entry(e)
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Simulation exposes the authoritative combat core.
func (s *Server) Simulation() *combat.Simulation {
	return s.sim
}

// MatchID is the session id announced to peers.
func (s *Server) MatchID() string {
	return s.matchID
}

// LevelName is the arena being played.
func (s *Server) LevelName() string {
	return s.level.Name
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
