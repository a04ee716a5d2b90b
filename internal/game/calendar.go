package game

import "time"

// OktoberfestMonth is the month in which every seat plays at random.
const OktoberfestMonth = 10

// WithMonth fixes the starting month (1-12) instead of drawing one.
func WithMonth(month int) Option {
	return func(g *Game) {
		if month >= 1 && month <= 12 {
			g.month = month
		}
	}
}

// WithFestivalDecider sets the decider each seat switches to for the
// Oktoberfest month. Without one the month passes with no swap.
func WithFestivalDecider(fn func(p *Player) Decider) Option {
	return func(g *Game) {
		g.festival = fn
	}
}

// MonthName returns the English name of the current month.
func (s *State) MonthName() string {
	return time.Month(s.Month).String()
}

func (g *Game) openCalendar() {
	month := g.month
	if month == 0 {
		month = g.rng.Intn(12) + 1
	}
	g.State.Month = month
	g.Logger.Info("the game opens in %s", g.State.MonthName())
	if month == OktoberfestMonth {
		g.startOktoberfest()
	}
}

// advanceMonth moves the calendar on by one presidency.
func (g *Game) advanceMonth() {
	s := g.State
	s.Month = s.Month%12 + 1
	g.Logger.Info("%s begins", s.MonthName())
	switch {
	case s.Month == OktoberfestMonth:
		g.startOktoberfest()
	case s.Month == OktoberfestMonth+1 && s.Oktoberfest:
		g.endOktoberfest()
	}
}

func (g *Game) startOktoberfest() {
	s := g.State
	if s.Oktoberfest {
		return
	}
	s.Oktoberfest = true
	if g.festival != nil {
		g.sober = make(map[string]Decider, len(s.Active))
		for _, p := range s.Active {
			g.sober[p.ID] = p.Decider
			p.Decider = g.festival(p)
		}
	}
	g.Logger.Info("Oktoberfest has begun in %s: every seat plays at random this month", s.MonthName())
}

func (g *Game) endOktoberfest() {
	s := g.State
	if !s.Oktoberfest {
		return
	}
	s.Oktoberfest = false
	for _, p := range s.Players {
		if d, ok := g.sober[p.ID]; ok {
			p.Decider = d
		}
	}
	g.sober = nil
	g.Logger.Info("Oktoberfest is over: every seat returns to its own strategy")
}
