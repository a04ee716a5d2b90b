package game

import (
	"fmt"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// NominateChancellor asks the presidential candidate for a nominee. It
// returns nil when nobody is eligible or the candidate declines.
func (g *Game) NominateChancellor() (*Player, error) {
	s := g.State
	eligible := s.EligibleChancellors()
	if len(eligible) == 0 {
		return nil, nil
	}
	president := s.PresidentCandidate
	nominee := president.Decider.NominateChancellor(g.View(president), eligible)
	if nominee == nil {
		return nil, nil
	}
	if indexOf(eligible, nominee) < 0 {
		return nil, fmt.Errorf("%w: %s nominated ineligible %s", ErrInvalidDecision, president, nominee)
	}
	g.Logger.Info("%s nominates %s for chancellor", president, nominee)
	return nominee, nil
}

// Vote polls every active player on the candidate government. The vote
// passes on a strict majority of ja.
func (g *Game) Vote() bool {
	s := g.State
	ballots := make(map[string]bool, len(s.Active))
	ja := 0
	for _, p := range s.Active {
		vote := p.Decider.Vote(g.View(p), s.PresidentCandidate, s.ChancellorCandidate)
		ballots[p.ID] = vote
		if vote {
			ja++
		}
	}
	nein := len(s.Active) - ja
	passed := ja > nein
	s.Governments = append(s.Governments, Government{
		Round:      s.Round,
		President:  s.PresidentCandidate.ID,
		Chancellor: s.ChancellorCandidate.ID,
		Ballots:    ballots,
		Passed:     passed,
	})
	outcome := "fails"
	if passed {
		outcome = "passes"
	}
	g.Logger.Info("vote on %s / %s %s: %d ja, %d nein", s.PresidentCandidate, s.ChancellorCandidate, outcome, ja, nein)
	return passed
}

// FilterPolicies has the president keep two of the three drawn cards.
func (g *Game) FilterPolicies(drawn []policy.Policy) ([]policy.Policy, policy.Policy, error) {
	president := g.State.President
	kept, discarded := president.Decider.FilterPolicies(g.View(president), append([]policy.Policy(nil), drawn...))
	if len(kept) != 2 || !samePolicies(append(append([]policy.Policy(nil), kept...), discarded), drawn) {
		return nil, "", fmt.Errorf("%w: president kept %v discarded %s from %v", ErrInvalidDecision, kept, discarded, drawn)
	}
	return kept, discarded, nil
}

// ChoosePolicy has the chancellor pick which of the two kept cards to enact.
func (g *Game) ChoosePolicy(kept []policy.Policy) (policy.Policy, policy.Policy, error) {
	chancellor := g.State.Chancellor
	enacted, discarded := chancellor.Decider.ChoosePolicy(g.View(chancellor), append([]policy.Policy(nil), kept...))
	if !samePolicies([]policy.Policy{enacted, discarded}, kept) {
		return "", "", fmt.Errorf("%w: chancellor enacted %s discarded %s from %v", ErrInvalidDecision, enacted, discarded, kept)
	}
	return enacted, discarded, nil
}

// Enact puts p on the board and records it. The unlocked power, if any, is
// returned; chaos cards never unlock one.
func (g *Game) Enact(p policy.Policy, chaos bool) string {
	return g.enact(p, chaos, true)
}

// EnactWithoutPower resolves p as a regular enactment, so pending track
// blocks are consumed, but any power it would unlock is forfeited.
func (g *Game) EnactWithoutPower(p policy.Policy) {
	g.enact(p, false, false)
}

func (g *Game) enact(p policy.Policy, chaos, grant bool) string {
	power := g.Board.Enact(p, board.EnactOptions{
		Chaos:           chaos,
		EmergencyPowers: g.Rules.EmergencyPowers,
		AntiPolicies:    g.Rules.AntiPolicies,
		Removal:         g.socialDemocraticRemoval(chaos),
	})
	if !grant && power != "" {
		g.Logger.Info("%s is forfeited", power)
		power = ""
	}
	b := g.Board
	g.State.Enactments = append(g.State.Enactments, Enactment{
		Round:     g.State.Round,
		Policy:    p,
		Chaos:     chaos,
		Power:     power,
		Liberal:   b.Liberal.Count,
		Fascist:   b.Fascist.Count,
		Communist: b.Communist.Count,
	})
	g.Logger.Info("enacted %s (chaos=%t): liberal %d/%d, fascist %d/%d, communist %d/%d",
		p, chaos, b.Liberal.Count, b.Liberal.Size, b.Fascist.Count, b.Fascist.Size, b.Communist.Count, b.Communist.Size)
	if power != "" {
		g.Logger.Info("power unlocked: %s", power)
	}
	return power
}

func (g *Game) socialDemocraticRemoval(chaos bool) func() role.Party {
	chancellor := g.State.Chancellor
	if chaos || chancellor == nil {
		return nil
	}
	return func() role.Party {
		return chancellor.Decider.SocialDemocraticRemoval(g.View(chancellor))
	}
}

// EnactChaos enacts the top card of the draw pile without granting powers
// and resets the election tracker.
func (g *Game) EnactChaos() (policy.Policy, error) {
	drawn, err := g.Board.Draw(1)
	if err != nil {
		return "", fmt.Errorf("game: chaos policy: %w", err)
	}
	g.Logger.Info("chaos: the country enacts the top policy")
	g.Enact(drawn[0], true)
	g.State.ElectionTracker = 0
	return drawn[0], nil
}

// CheckPolicyWin declares a winner when a track is full.
func (g *Game) CheckPolicyWin() bool {
	var w Winner
	switch g.Board.PolicyWinner() {
	case role.PartyLiberal:
		w = WinnerLiberal
	case role.PartyFascist:
		w = WinnerFascist
	case role.PartyCommunist:
		w = WinnerCommunist
	default:
		return false
	}
	g.State.Declare(w)
	g.Logger.Info("%s track complete: %s win", w, w)
	return true
}

// HitlerExecuted declares the win for Hitler's death.
func (g *Game) HitlerExecuted() {
	w := WinnerLiberal
	if g.Rules.Communists {
		w = WinnerLiberalAndCommunist
	}
	g.State.Declare(w)
	g.Logger.Info("Hitler was executed: %s win", w)
}

// ResolveMark executes the marked player once the fascist track has grown by
// MarkDelay since marking. It returns the executed player, or nil.
func (g *Game) ResolveMark() *Player {
	s := g.State
	marked := s.MarkedForExecution
	if marked == nil {
		return nil
	}
	since := g.Board.Fascist.Count - s.MarkedTrackerValue
	if since < MarkDelay {
		g.Logger.Info("%s remains marked: %d more fascist policies needed", marked, MarkDelay-since)
		return nil
	}
	g.Logger.Info("executing %s: marked at fascist track %d, now %d", marked, s.MarkedTrackerValue, g.Board.Fascist.Count)
	s.Kill(marked)
	if s.PresidentCandidate == marked {
		s.PresidentCandidate = g.nextLiving(marked)
	}
	return marked
}

// ApplyTermLimits recomputes who may not be the next chancellor from the
// outgoing government.
func (g *Game) ApplyTermLimits(president, chancellor *Player) {
	s := g.State
	s.TermLimited = nil
	if len(s.Active) > 7 {
		if president != nil {
			s.TermLimited = append(s.TermLimited, president)
		}
		if chancellor != nil && chancellor != president {
			s.TermLimited = append(s.TermLimited, chancellor)
		}
		return
	}
	if chancellor != nil {
		s.TermLimited = append(s.TermLimited, chancellor)
	}
}

// AdvancePresident passes the candidacy to the next living seat. After a
// special election the rotation resumes from the seat that called it.
func (g *Game) AdvancePresident() {
	s := g.State
	from := s.President
	if from == nil {
		from = s.PresidentCandidate
	}
	if s.SpecialElection {
		s.SpecialElection = false
		if ret := s.Player(s.SpecialElectionReturnID); ret != nil {
			from = ret
		}
		s.SpecialElectionReturnID = ""
	}
	s.PresidentCandidate = g.nextLiving(from)
	s.Round++
	g.Logger.Info("round %d: %s is the presidential candidate", s.Round, s.PresidentCandidate)
	g.advanceMonth()
}

// nextLiving walks seat order after from and returns the first living player.
func (g *Game) nextLiving(from *Player) *Player {
	players := g.State.Players
	start := 0
	if from != nil {
		start = from.Seat + 1
	}
	for i := 0; i < len(players); i++ {
		p := players[(start+i)%len(players)]
		if !p.Dead {
			return p
		}
	}
	return nil
}

func samePolicies(a, b []policy.Policy) bool {
	if len(a) != len(b) {
		return false
	}
	rest := b
	for _, p := range a {
		var ok bool
		if rest, ok = policy.Remove(rest, p); !ok {
			return false
		}
	}
	return true
}
