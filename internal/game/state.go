package game

import (
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Winner names the side that won.
type Winner string

const (
	WinnerNone                Winner = ""
	WinnerLiberal             Winner = "liberal"
	WinnerFascist             Winner = "fascist"
	WinnerCommunist           Winner = "communist"
	WinnerLiberalAndCommunist Winner = "liberal_and_communist"
)

// ChaosThreshold is the number of failed elections that forces a chaos policy.
const ChaosThreshold = 3

// MarkDelay is how many fascist enactments after marking execute the mark.
const MarkDelay = 3

// Government is one voted-on administration.
type Government struct {
	Round      int
	President  string
	Chancellor string
	Ballots    map[string]bool
	Passed     bool
}

// Enactment records a policy reaching the board.
type Enactment struct {
	Round     int
	Policy    policy.Policy
	Chaos     bool
	Power     string
	Liberal   int
	Fascist   int
	Communist int
}

// State is the mutable aggregate shared by phases and powers.
type State struct {
	Players []*Player
	Active  []*Player

	President           *Player
	PresidentCandidate  *Player
	Chancellor          *Player
	ChancellorCandidate *Player

	ElectionTracker int
	TermLimited     []*Player

	MarkedForExecution *Player
	MarkedTrackerValue int

	RevealedAffiliations map[string]role.Party
	Investigated         []*Player

	SpecialElection         bool
	SpecialElectionReturnID string

	// LastDiscarded is the most recent legislative discard: the chancellor's
	// once a policy is enacted, the president's after a veto.
	LastDiscarded policy.Policy

	Round int

	// Month runs 1-12 and advances with every presidential candidacy.
	Month       int
	Oktoberfest bool

	Governments []Government
	Enactments  []Enactment

	Winner   Winner
	GameOver bool
}

// Player returns the player with id, or nil.
func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// IsActive reports whether p is still in the active list.
func (s *State) IsActive(p *Player) bool {
	return indexOf(s.Active, p) >= 0
}

// IsTermLimited reports whether p may not be nominated chancellor.
func (s *State) IsTermLimited(p *Player) bool {
	return indexOf(s.TermLimited, p) >= 0
}

// EligibleChancellors returns active players other than the presidential
// candidate that are not term limited.
func (s *State) EligibleChancellors() []*Player {
	var eligible []*Player
	for _, p := range s.Active {
		if p == s.PresidentCandidate || p.Dead || s.IsTermLimited(p) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

// ActiveExcept returns active players minus the given ones.
func (s *State) ActiveExcept(skip ...*Player) []*Player {
	var out []*Player
	for _, p := range s.Active {
		if indexOf(skip, p) >= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Kill marks p dead and drops it from the active list. A pending mark on p is
// cleared.
func (s *State) Kill(p *Player) {
	p.Dead = true
	if i := indexOf(s.Active, p); i >= 0 {
		s.Active = append(s.Active[:i:i], s.Active[i+1:]...)
	}
	if s.MarkedForExecution == p {
		s.ClearMark()
	}
}

// Mark records p for execution once the fascist track has grown by MarkDelay.
func (s *State) Mark(p *Player, fascistTrack int) {
	s.MarkedForExecution = p
	s.MarkedTrackerValue = fascistTrack
}

// ClearMark drops any pending execution mark.
func (s *State) ClearMark() {
	s.MarkedForExecution = nil
	s.MarkedTrackerValue = 0
}

// Declare ends the game with w as the winner.
func (s *State) Declare(w Winner) {
	s.Winner = w
	s.GameOver = true
}

func indexOf(list []*Player, p *Player) int {
	for i, q := range list {
		if q == p {
			return i
		}
	}
	return -1
}
