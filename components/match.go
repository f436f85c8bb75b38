package components

import (
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// PlayerScore tracks a player's match statistics
type PlayerScore struct {
	ClientNum int
	Frags     int
	Deaths    int
	Team      int // -1 for FFA
}

// MatchData stores the current match state and scores.
// This is a singleton component - only one match exists at a time.
type MatchData struct {
	ID     string
	State  netconfig.MatchStateID
	Timer  int64         // ms left in the current state, 0 when untimed
	Scores []PlayerScore // indexed by client number
}

var Match = donburi.NewComponentType[MatchData]()

// GetPlayerScore returns the score for a player, creating it if needed
func (m *MatchData) GetPlayerScore(clientNum int) *PlayerScore {
	for len(m.Scores) <= clientNum {
		m.Scores = append(m.Scores, PlayerScore{
			ClientNum: len(m.Scores),
			Team:      -1,
		})
	}
	return &m.Scores[clientNum]
}

// AddFrag increments the frag count, or decrements it for suicides.
func (m *MatchData) AddFrag(clientNum int, suicide bool) {
	score := m.GetPlayerScore(clientNum)
	if suicide {
		score.Frags--
		return
	}
	score.Frags++
}

// AddDeath increments death count for a player
func (m *MatchData) AddDeath(clientNum int) {
	m.GetPlayerScore(clientNum).Deaths++
}

// GetLeader returns the client with the most frags (-1 for tie, -2 for no scores)
func (m *MatchData) GetLeader() int {
	if len(m.Scores) == 0 {
		return -2
	}

	maxFrags := 0
	leader := -1
	tied := false
	first := true

	for _, score := range m.Scores {
		switch {
		case first || score.Frags > maxFrags:
			maxFrags = score.Frags
			leader = score.ClientNum
			tied = false
			first = false
		case score.Frags == maxFrags:
			tied = true
		}
	}

	if tied {
		return -1
	}
	return leader
}

// FragTable flattens the scores for replication.
func (m *MatchData) FragTable() map[int]int {
	out := make(map[int]int, len(m.Scores))
	for _, s := range m.Scores {
		out[s.ClientNum] = s.Frags
	}
	return out
}
