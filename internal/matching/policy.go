package matching

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// Policy decides orientation/gender eligibility between two profiles.
// Implementations are built once at startup and never mutated.
type Policy interface {
	// Recognizes reports whether the requester's category has an entry.
	Recognizes(requester Profile) bool
	// Accepts reports whether candidate is acceptable for requester.
	// Only meaningful when Recognizes(requester) is true.
	Accepts(requester, candidate Profile) bool
}

const (
	PolicyShapeOrientation = "orientation"
	PolicyShapeGender      = "gender"
)

// OrientationPolicy maps a requester orientation to acceptable candidate
// orientations.
type OrientationPolicy map[Orientation][]Orientation

func (p OrientationPolicy) Recognizes(requester Profile) bool {
	_, ok := p[requester.Orientation]
	return ok
}

func (p OrientationPolicy) Accepts(requester, candidate Profile) bool {
	return slices.Contains(p[requester.Orientation], candidate.Orientation)
}

// GenderPolicy maps a requester orientation to acceptable candidate genders.
type GenderPolicy map[Orientation][]Gender

func (p GenderPolicy) Recognizes(requester Profile) bool {
	_, ok := p[requester.Orientation]
	return ok
}

func (p GenderPolicy) Accepts(requester, candidate Profile) bool {
	return slices.Contains(p[requester.Orientation], candidate.Gender)
}

// DefaultOrientationPolicy only pairs people whose orientations are mutually
// compatible.
func DefaultOrientationPolicy() OrientationPolicy {
	return OrientationPolicy{
		OrientationMaleHetero:   {OrientationFemaleHetero, OrientationFemaleBi},
		OrientationMaleHomo:     {OrientationMaleHomo, OrientationMaleBi},
		OrientationMaleBi:       {OrientationMaleHomo, OrientationMaleBi, OrientationFemaleHetero, OrientationFemaleBi},
		OrientationFemaleHetero: {OrientationMaleHetero, OrientationMaleBi},
		OrientationFemaleHomo:   {OrientationFemaleHomo, OrientationFemaleBi},
		OrientationFemaleBi:     {OrientationMaleHetero, OrientationMaleBi, OrientationFemaleHomo, OrientationFemaleBi},
	}
}

// DefaultGenderPolicy only looks at the candidate's gender.
func DefaultGenderPolicy() GenderPolicy {
	both := []Gender{GenderMale, GenderFemale}
	return GenderPolicy{
		OrientationMaleHetero:   {GenderFemale},
		OrientationMaleHomo:     {GenderMale},
		OrientationMaleBi:       both,
		OrientationFemaleHetero: {GenderMale},
		OrientationFemaleHomo:   {GenderFemale},
		OrientationFemaleBi:     both,
	}
}

// LoadPolicy returns the policy for the given shape. When path is set the
// table is read from a JSON object keyed by orientation id, e.g.
//
//	{"0": [3, 5], "3": [0, 2]}            // orientation shape
//	{"0": ["female"], "3": ["male"]}      // gender shape
func LoadPolicy(shape, path string) (Policy, error) {
	if shape == "" {
		shape = PolicyShapeOrientation
	}

	var raw []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy file: %w", err)
		}
		raw = b
	}

	switch shape {
	case PolicyShapeOrientation:
		if raw == nil {
			return DefaultOrientationPolicy(), nil
		}
		table, err := decodeTable[Orientation](raw)
		if err != nil {
			return nil, err
		}
		return OrientationPolicy(table), nil

	case PolicyShapeGender:
		if raw == nil {
			return DefaultGenderPolicy(), nil
		}
		table, err := decodeTable[Gender](raw)
		if err != nil {
			return nil, err
		}
		return GenderPolicy(table), nil

	default:
		return nil, fmt.Errorf("unknown policy shape %q", shape)
	}
}

func decodeTable[V any](raw []byte) (map[Orientation][]V, error) {
	var byKey map[string][]V
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("decode policy table: %w", err)
	}

	table := make(map[Orientation][]V, len(byKey))
	for k, v := range byKey {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("policy key %q is not an orientation id", k)
		}
		table[Orientation(id)] = v
	}
	return table, nil
}
