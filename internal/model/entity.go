package model

// EntityID is a stable unique handle for an entity within a match.
// Value 0 is reserved as "no entity" and is never assigned.
type EntityID uint32

// NoEntity is the zero EntityID.
const NoEntity EntityID = 0

// Team identifies a side in a match.
type Team int8

const (
	TeamNone Team = iota
	TeamAurora
	TeamBoreal
)

func (t Team) String() string {
	switch t {
	case TeamAurora:
		return "Aurora"
	case TeamBoreal:
		return "Boreal"
	default:
		return "None"
	}
}

// School is the character class identity. Each school carries its own
// secondary resource alongside warmth and energy.
type School int8

const (
	SchoolVanguard School = iota // Grit
	SchoolPeddler                // Credit
	SchoolChorus                 // Rhythm
	SchoolWildcard               // Variety
)

// SecondaryKind is a school-specific secondary resource.
type SecondaryKind int8

const (
	SecondaryGrit SecondaryKind = iota
	SecondaryCredit
	SecondaryRhythm
	SecondaryVariety
)

// SecondaryResource returns the secondary resource kind used by the school.
func (s School) SecondaryResource() SecondaryKind {
	switch s {
	case SchoolPeddler:
		return SecondaryCredit
	case SchoolChorus:
		return SecondaryRhythm
	case SchoolWildcard:
		return SecondaryVariety
	default:
		return SecondaryGrit
	}
}

func (s School) String() string {
	switch s {
	case SchoolVanguard:
		return "Vanguard"
	case SchoolPeddler:
		return "Peddler"
	case SchoolChorus:
		return "Chorus"
	case SchoolWildcard:
		return "Wildcard"
	default:
		return "Unknown"
	}
}
