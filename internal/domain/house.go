package domain

import "strings"

const (
	Gryffindor = "Gryffindor"
	Hufflepuff = "Hufflepuff"
	Ravenclaw  = "Ravenclaw"
	Slytherin  = "Slytherin"
)

// Houses lists the four houses in alphabetical order.
var Houses = []string{Gryffindor, Hufflepuff, Ravenclaw, Slytherin}

// CanonicalHouse matches name against the four houses ignoring case and
// surrounding whitespace, returning the canonical spelling.
func CanonicalHouse(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, h := range Houses {
		if strings.EqualFold(h, name) {
			return h, true
		}
	}
	return "", false
}
