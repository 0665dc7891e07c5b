// Package matching holds the decision logic of the service: which profiles a
// user may be shown, in what order, and how swipes turn into relationships.
//
// Ranking functions take already-fetched profiles and return plain values.
// Swipe and relationship operations go through the Store interface; the
// gorm implementation lives in internal/repository.
package matching

import "strconv"

// Orientation is the sexual-orientation category reported by the user
// service. The vocabulary is deployment configuration; the constants below
// are the ids used by the default policy tables.
type Orientation int

const (
	OrientationUnknown      Orientation = -1
	OrientationMaleHetero   Orientation = 0
	OrientationMaleHomo     Orientation = 1
	OrientationMaleBi       Orientation = 2
	OrientationFemaleHetero Orientation = 3
	OrientationFemaleHomo   Orientation = 4
	OrientationFemaleBi     Orientation = 5
)

func (o Orientation) String() string {
	switch o {
	case OrientationMaleHetero:
		return "male-hetero"
	case OrientationMaleHomo:
		return "male-homo"
	case OrientationMaleBi:
		return "male-bi"
	case OrientationFemaleHetero:
		return "female-hetero"
	case OrientationFemaleHomo:
		return "female-homo"
	case OrientationFemaleBi:
		return "female-bi"
	case OrientationUnknown:
		return "unknown"
	default:
		return "orientation-" + strconv.Itoa(int(o))
	}
}

// Gender is a free-form gender category ("male", "female", ...).
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile is the read-only view of a user this service works with.
type Profile struct {
	ID          uint64
	Username    string
	Age         int
	Gender      Gender
	Orientation Orientation
	Interests   []string
}
