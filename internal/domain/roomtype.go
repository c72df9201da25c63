package domain

import (
	"log"
	"strings"
)

// RoomTypeClass is the tagged result of classifying a price option's
// free-text room label. Labels come straight from the circuit catalog and
// are Romanian, so matching folds diacritics first.
type RoomTypeClass string

const (
	// "persoana + camera dubla": one adult sharing a double.
	RoomSinglePersonDouble RoomTypeClass = "single_person_double"
	// family room: two adults and one child, fixed.
	RoomFamily RoomTypeClass = "family_room"
	// triple for three adults, fixed.
	RoomTripleFixed RoomTypeClass = "triple_fixed"
	// single room, one adult.
	RoomSingle RoomTypeClass = "single_room"
	// generic triple: three occupants, split is flexible.
	RoomTripleFlexible RoomTypeClass = "triple_flexible"
	// double room: two occupants, split is flexible.
	RoomDoubleFlexible RoomTypeClass = "double_flexible"
	// unrecognized label, treated as one adult.
	RoomUnknown RoomTypeClass = "unknown"
)

// Occupancy is the passenger-count constraint a room class imposes. When
// Flexible is false the adult/child split must match exactly; when true any
// split is accepted as long as adults+children equals Total.
type Occupancy struct {
	Class    RoomTypeClass `json:"class"`
	Adults   int           `json:"adults"`
	Children int           `json:"children"`
	Total    int           `json:"total"`
	Flexible bool          `json:"flexible"`
}

// Matches reports whether the proposed counts satisfy the constraint.
func (o Occupancy) Matches(adults, children int) bool {
	if adults < 0 || children < 0 {
		return false
	}
	if adults+children != o.Total {
		return false
	}
	if o.Flexible {
		return true
	}
	return adults == o.Adults && children == o.Children
}

var diacriticFolder = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
)

func normalizeRoomLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = diacriticFolder.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ClassifyRoomType maps a catalog room label to its occupancy constraint.
// Rule order matters: the more specific labels must win before the generic
// "dubla"/"tripla" fallthroughs. Unrecognized labels are logged and default
// to a single adult so a bad catalog entry shows up early instead of
// silently booking the wrong occupancy.
func ClassifyRoomType(label string) Occupancy {
	s := normalizeRoomLabel(label)
	has := func(subs ...string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}

	switch {
	case has("persoana") && has("camera dubla", "dubla"):
		return Occupancy{Class: RoomSinglePersonDouble, Adults: 1, Total: 1}

	case has("copil") && has("adult"):
		return Occupancy{Class: RoomFamily, Adults: 2, Children: 1, Total: 3}

	case has("3 persoane", "trei persoane") && has("tripla"):
		return Occupancy{Class: RoomTripleFixed, Adults: 3, Total: 3}

	case has("single", "singulara"):
		return Occupancy{Class: RoomSingle, Adults: 1, Total: 1}

	case has("tripla", "triple"):
		return Occupancy{Class: RoomTripleFlexible, Adults: 2, Children: 1, Total: 3, Flexible: true}

	case has("camera dubla", "double", "dubla"):
		return Occupancy{Class: RoomDoubleFlexible, Adults: 2, Total: 2, Flexible: true}

	default:
		if s != "" {
			log.Printf("[ROOMTYPE] unrecognized room label %q, defaulting to 1 adult", label)
		}
		return Occupancy{Class: RoomUnknown, Adults: 1, Total: 1}
	}
}
