package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersEmpty(t *testing.T) {
	fs, err := ParseFilters("")
	require.NoError(t, err)
	assert.Nil(t, fs)

	fs, err = ParseFilters("   ")
	require.NoError(t, err)
	assert.Nil(t, fs)
}

func TestParseFilters(t *testing.T) {
	fs, err := ParseFilters(`[{"field":"squadron","value":"Raven"},{"field":"operatorId","value":42}]`)
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "Raven", fs.Value("squadron"))
	assert.Equal(t, "42", fs.Value("operatorId"))
	assert.Equal(t, "", fs.Value("missing"))
}

func TestParseFiltersMalformed(t *testing.T) {
	for _, raw := range []string{"not json", `{"field":"x"}`, `[{"field":`} {
		_, err := ParseFilters(raw)
		assert.ErrorIs(t, err, ErrBadFilters, "raw=%q", raw)
	}
}

func TestFiltersValueNilSkipped(t *testing.T) {
	fs, err := ParseFilters(`[{"field":"squadron","value":null},{"field":"squadron","value":"Viper"}]`)
	require.NoError(t, err)
	assert.Equal(t, "Viper", fs.Value("squadron"))
}

func TestPickPrecedence(t *testing.T) {
	fs := Filters{{Field: "squadron", Value: "FromFilters"}}

	// the direct query parameter wins over the structured filter
	assert.Equal(t, "Direct", Pick("Direct", fs, "squadron"))
	assert.Equal(t, "FromFilters", Pick("", fs, "squadron"))
	assert.Equal(t, "FromFilters", Pick("   ", fs, "squadron"))
	assert.Equal(t, "", Pick("", nil, "squadron"))
}
