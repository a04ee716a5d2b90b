// Package policy defines the policy cards and the deck factory.
package policy

// Policy is an immutable card tag. Two policies are equal when their tags are.
type Policy string

const (
	Liberal          Policy = "liberal"
	Fascist          Policy = "fascist"
	Communist        Policy = "communist"
	AntiFascist      Policy = "antifascist"
	AntiCommunist    Policy = "anticommunist"
	SocialDemocratic Policy = "socialdemocratic"
	Article48        Policy = "article48"
	EnablingAct      Policy = "enablingact"
)

// All lists every policy tag in a stable order.
var All = []Policy{
	Liberal,
	Fascist,
	Communist,
	AntiFascist,
	AntiCommunist,
	SocialDemocratic,
	Article48,
	EnablingAct,
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is a known tag.
func (p Policy) Valid() bool {
	for _, known := range All {
		if p == known {
			return true
		}
	}
	return false
}

// IsAnti reports whether p is one of the three anti-policies.
func (p Policy) IsAnti() bool {
	return p == AntiFascist || p == AntiCommunist || p == SocialDemocratic
}

// IsEmergency reports whether p grants an emergency power when enacted.
func (p Policy) IsEmergency() bool {
	return p == Article48 || p == EnablingAct
}

// Count returns how many cards in pile carry the given tag.
func Count(pile []Policy, tag Policy) int {
	n := 0
	for _, p := range pile {
		if p == tag {
			n++
		}
	}
	return n
}

// Tally groups a pile by tag.
func Tally(pile []Policy) map[Policy]int {
	out := make(map[Policy]int, len(All))
	for _, p := range pile {
		out[p]++
	}
	return out
}

// Remove returns a copy of pile without the first occurrence of p and whether
// it was found.
func Remove(pile []Policy, p Policy) ([]Policy, bool) {
	for i, candidate := range pile {
		if candidate == p {
			out := make([]Policy, 0, len(pile)-1)
			out = append(out, pile[:i]...)
			out = append(out, pile[i+1:]...)
			return out, true
		}
	}
	return append([]Policy(nil), pile...), false
}
