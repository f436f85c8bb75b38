// Package network is the peer side of a match: it announces the local
// player's shots to the host and queues remote events for the peer loop.
package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// ErrNotConnected is returned by SendMessage before the socket is up.
var ErrNotConnected = errors.New("not connected")

// eventBuffer bounds each remote event queue. Overflow is dropped.
const eventBuffer = 32

// Client manages the websocket connection to a host. Router callbacks run on
// necs goroutines, so shared fields are guarded by mu and events cross over
// through buffered channels.
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	clientNum      int
	reconnectToken string
	serverName     string
	matchID        string
	tickRate       int
	level          string
	rules          combat.MatchRules
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	shootCh   chan messages.ShootEvent
	explodeCh chan messages.ExplodeEvent
	selectCh  chan messages.GunSelectEvent
	deathCh   chan messages.DeathEvent
	stateCh   chan messages.MatchStateChangeEvent
}

var _ combat.Network = (*Client)(nil)

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		clientNum:  -1,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		shootCh:    make(chan messages.ShootEvent, eventBuffer),
		explodeCh:  make(chan messages.ExplodeEvent, eventBuffer),
		selectCh:   make(chan messages.GunSelectEvent, eventBuffer),
		deathCh:    make(chan messages.DeathEvent, eventBuffer),
		stateCh:    make(chan messages.MatchStateChangeEvent, eventBuffer),
	}
}

// Connect dials address in a background goroutine and sends the join
// request once the socket is open.
func (c *Client) Connect(address string, join messages.JoinRequest) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	if join.ReconnectToken == "" {
		join.ReconnectToken = c.reconnectToken
	}
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(join); err != nil {
			c.setError(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: client=%d match=%s server=%s tickRate=%d",
			msg.ClientNum, msg.MatchID, msg.ServerName, msg.TickRate)
		c.accept(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.ShootEvent) { push(c.shootCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.ExplodeEvent) { push(c.explodeCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.GunSelectEvent) { push(c.selectCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) { push(c.deathCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.MatchStateChangeEvent) { push(c.stateCh, evt) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) accept(msg messages.JoinAccepted) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.networkID = msg.NetworkID
	c.clientNum = msg.ClientNum
	c.reconnectToken = msg.ReconnectToken
	c.serverName = msg.ServerName
	c.matchID = msg.MatchID
	c.tickRate = msg.TickRate
	c.level = msg.Level
	c.rules = combat.MatchRules{
		Multiplayer: msg.Multiplayer,
		Teams:       msg.Teams,
		Mayhem:      msg.Mayhem,
	}
	c.state = StateJoinedGame
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// ClientNum is the number the host assigned, or -1 before joining.
func (c *Client) ClientNum() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientNum
}

func (c *Client) Level() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) MatchID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

// Rules are the match rules announced in JoinAccepted.
func (c *Client) Rules() combat.MatchRules {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// SendFireInput reports the local trigger and aim to the host.
func (c *Client) SendFireInput(in messages.FireInput) error {
	return c.SendMessage(in)
}

func (c *Client) SendShoot(evt messages.ShootEvent) {
	c.send("shoot", evt)
}

func (c *Client) SendExplode(evt messages.ExplodeEvent) {
	c.send("explode", evt)
}

func (c *Client) SendGunSelect(evt messages.GunSelectEvent) {
	c.send("gunselect", evt)
}

// send is fire and forget; the simulation never waits on the socket.
func (c *Client) send(kind string, msg any) {
	if err := c.SendMessage(msg); err != nil && !errors.Is(err, ErrNotConnected) {
		log.Printf("[client] send %s: %v", kind, err)
	}
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// Mirror feeds every queued remote event into sim. Events about the local
// player are skipped since sim already ran them.
func (c *Client) Mirror(sim *combat.Simulation) {
	self := c.ClientNum()
	for _, evt := range c.DrainShootEvents() {
		if evt.Shooter != self {
			sim.HandleRemoteShoot(evt)
		}
	}
	for _, evt := range c.DrainExplodeEvents() {
		if evt.Shooter != self {
			sim.HandleRemoteExplode(evt)
		}
	}
	for _, evt := range c.DrainGunSelectEvents() {
		if evt.Actor != self {
			sim.HandleGunSelect(evt)
		}
	}
}

func (c *Client) DrainShootEvents() []messages.ShootEvent {
	return drainChan(c.shootCh)
}

func (c *Client) DrainExplodeEvents() []messages.ExplodeEvent {
	return drainChan(c.explodeCh)
}

func (c *Client) DrainGunSelectEvents() []messages.GunSelectEvent {
	return drainChan(c.selectCh)
}

func (c *Client) DrainDeathEvents() []messages.DeathEvent {
	return drainChan(c.deathCh)
}

func (c *Client) DrainMatchStateEvents() []messages.MatchStateChangeEvent {
	return drainChan(c.stateCh)
}

// push queues v without blocking the router goroutine.
func push[T any](ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
