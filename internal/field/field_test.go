package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronspan/cronspan/internal/field"
)

func TestCeiling_Bitset(t *testing.T) {
	spec, err := field.Parse("*/15", field.Minutes)
	require.NoError(t, err)

	v, ok := spec.Ceiling(7)
	require.True(t, ok)
	assert.Equal(t, 15, v)

	v, ok = spec.Ceiling(45)
	require.True(t, ok)
	assert.Equal(t, 45, v)

	_, ok = spec.Ceiling(46)
	assert.False(t, ok)
}

func TestCeiling_ClampsBelowDomain(t *testing.T) {
	spec, err := field.Parse("10-20", field.Dom)
	require.NoError(t, err)

	v, ok := spec.Ceiling(-3)
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestCeiling_Wildcard(t *testing.T) {
	spec := field.Wildcard(field.Hours)

	v, ok := spec.Ceiling(13)
	require.True(t, ok)
	assert.Equal(t, 13, v)

	_, ok = spec.Ceiling(24)
	assert.False(t, ok)
}

func TestCeiling_YearTerms(t *testing.T) {
	spec, err := field.Parse("2024-2030/2,2040", field.Years)
	require.NoError(t, err)

	v, ok := spec.Ceiling(2025)
	require.True(t, ok)
	assert.Equal(t, 2026, v)

	v, ok = spec.Ceiling(2031)
	require.True(t, ok)
	assert.Equal(t, 2040, v)

	_, ok = spec.Ceiling(2041)
	assert.False(t, ok)
}

func TestCeiling_WildcardYearOutsideDomain(t *testing.T) {
	spec := field.Wildcard(field.Years)

	v, ok := spec.Ceiling(2500)
	require.True(t, ok)
	assert.Equal(t, 2500, v)

	_, ok = spec.Ceiling(3000)
	assert.False(t, ok)
}

func TestSingle(t *testing.T) {
	spec := field.Single(field.Seconds, 0)
	assert.True(t, spec.Matches(0))
	assert.False(t, spec.Matches(1))

	v, ok := spec.Ceiling(0)
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = spec.Ceiling(1)
	assert.False(t, ok)
}
