// Package division classifies lifter records into demographic divisions.
package division

import "strings"

// Age band boundaries in years. Below juniorMaxAge is Junior, from
// juniorMaxAge up to but excluding mastersMinAge is Open, mastersMinAge
// and above is Masters.
const (
	juniorMaxAge  = 24
	mastersMinAge = 40
)

// Age band labels.
const (
	BandJunior  = "Junior"
	BandOpen    = "Open"
	BandMasters = "Masters"
)

// Sex bucket labels.
const (
	BucketMen   = "Men"
	BucketWomen = "Women"
)

// Division is a demographic division label, e.g. "Open Men".
type Division string

// The six divisions of the league.
const (
	OpenMen      Division = "Open Men"
	OpenWomen    Division = "Open Women"
	JuniorMen    Division = "Junior Men"
	JuniorWomen  Division = "Junior Women"
	MastersMen   Division = "Masters Men"
	MastersWomen Division = "Masters Women"
)

// Order returns the divisions in default display order. Presentation
// layers may reorder via configuration; ranking never depends on this.
func Order() []Division {
	return []Division{OpenMen, OpenWomen, JuniorMen, JuniorWomen, MastersMen, MastersWomen}
}

// AgeBand maps an age in years to its band label.
func AgeBand(age float64) string {
	switch {
	case age < juniorMaxAge:
		return BandJunior
	case age < mastersMinAge:
		return BandOpen
	default:
		return BandMasters
	}
}

// SexBucket maps a raw sex value to a bucket label. Values whose
// trimmed, upper-cased form starts with "M" are Men; everything else,
// including the empty string, is Women.
func SexBucket(sex string) string {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sex)), "M") {
		return BucketMen
	}
	return BucketWomen
}

// Classify assigns a division from age and sex. ok is false when the
// age is unknown; such records receive no division and the caller is
// expected to count them.
func Classify(age float64, ageKnown bool, sex string) (Division, bool) {
	if !ageKnown {
		return "", false
	}
	return Division(AgeBand(age) + " " + SexBucket(sex)), true
}

// Parse validates a division label against the known divisions,
// ignoring case and surrounding whitespace, and returns the canonical
// form. ok is false for anything else.
func Parse(s string) (Division, bool) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Order() {
		if strings.ToLower(string(d)) == want {
			return d, true
		}
	}
	return "", false
}
