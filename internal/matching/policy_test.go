package matching_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-matching/internal/matching"
)

func profile(id uint64, g matching.Gender, o matching.Orientation, interests ...string) matching.Profile {
	return matching.Profile{ID: id, Gender: g, Orientation: o, Interests: interests}
}

func TestDefaultOrientationPolicy(t *testing.T) {
	p := matching.DefaultOrientationPolicy()

	straightMan := profile(1, matching.GenderMale, matching.OrientationMaleHetero)
	straightWoman := profile(2, matching.GenderFemale, matching.OrientationFemaleHetero)
	gayMan := profile(3, matching.GenderMale, matching.OrientationMaleHomo)
	biWoman := profile(4, matching.GenderFemale, matching.OrientationFemaleBi)

	assert.True(t, p.Accepts(straightMan, straightWoman))
	assert.True(t, p.Accepts(straightWoman, straightMan))
	assert.False(t, p.Accepts(straightMan, gayMan))
	assert.True(t, p.Accepts(straightMan, biWoman))
	assert.False(t, p.Accepts(gayMan, straightWoman))

	assert.False(t, p.Recognizes(profile(5, "", matching.OrientationUnknown)))
}

func TestDefaultGenderPolicy(t *testing.T) {
	p := matching.DefaultGenderPolicy()

	biMan := profile(1, matching.GenderMale, matching.OrientationMaleBi)
	assert.True(t, p.Accepts(biMan, profile(2, matching.GenderFemale, matching.OrientationFemaleHomo)))
	assert.True(t, p.Accepts(biMan, profile(3, matching.GenderMale, matching.OrientationMaleHetero)))

	lesbian := profile(4, matching.GenderFemale, matching.OrientationFemaleHomo)
	assert.False(t, p.Accepts(lesbian, biMan))
}

func TestLoadPolicy(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults", func(t *testing.T) {
		p, err := matching.LoadPolicy("", "")
		require.NoError(t, err)
		assert.IsType(t, matching.OrientationPolicy{}, p)

		p, err = matching.LoadPolicy(matching.PolicyShapeGender, "")
		require.NoError(t, err)
		assert.IsType(t, matching.GenderPolicy{}, p)
	})

	t.Run("orientation file", func(t *testing.T) {
		path := filepath.Join(dir, "orientation.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"7": [8], "8": [7]}`), 0o600))

		p, err := matching.LoadPolicy(matching.PolicyShapeOrientation, path)
		require.NoError(t, err)

		a := profile(1, "", 7)
		assert.True(t, p.Recognizes(a))
		assert.True(t, p.Accepts(a, profile(2, "", 8)))
		assert.False(t, p.Recognizes(profile(3, "", matching.OrientationMaleHetero)))
	})

	t.Run("gender file", func(t *testing.T) {
		path := filepath.Join(dir, "gender.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"0": ["nonbinary"]}`), 0o600))

		p, err := matching.LoadPolicy(matching.PolicyShapeGender, path)
		require.NoError(t, err)
		assert.True(t, p.Accepts(profile(1, "", 0), profile(2, "nonbinary", 9)))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := matching.LoadPolicy("zodiac", "")
		assert.Error(t, err)

		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"x": [1]}`), 0o600))
		_, err = matching.LoadPolicy(matching.PolicyShapeOrientation, bad)
		assert.Error(t, err)

		_, err = matching.LoadPolicy(matching.PolicyShapeOrientation, filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}
