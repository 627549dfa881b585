package colorname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"black", Black},
		{"Blue", Blue},
		{"  BROWN ", Brown},
		{"grey", Grey},
		{"gray", Grey},
		{"yellow", Yellow},
		{"1", Black},
		{"11", Yellow},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"", "unknown", "0", "12", "-1", "3x", "cyan"} {
		got, err := ParseCategory(in)
		assert.Error(t, err, in)
		assert.Equal(t, Unknown, got, in)
	}
}

func TestParseCategory_StringRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "unknown", Unknown.String())
	assert.False(t, Unknown.Valid())
	assert.False(t, Category(NumCategories+1).Valid())
}
