package sid_test

import (
	"testing"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "guest account", raw: "S-1-5-21-1004336348-1177238915-682003330-501"},
		{name: "builtin administrators", raw: "S-1-5-32-544"},
		{name: "nt authority only", raw: "S-1-5"},
		{name: "world authority", raw: "S-1-1-0"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := sid.Parse(testCase.raw)
			require.NoError(t, err)
			assert.Equal(t, testCase.raw, parsed.String())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "missing prefix", raw: "1-5-32-544"},
		{name: "wrong revision", raw: "S-2-5-32-544"},
		{name: "non numeric sub-authority", raw: "S-1-5-32-abc"},
		{name: "too many sub-authorities", raw: "S-1-5-1-2-3-4-5-6-7-8-9-10-11-12-13-14-15-16"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := sid.Parse(testCase.raw)
			require.ErrorIs(t, err, sid.ErrMalformed)
		})
	}
}

func TestRID(t *testing.T) {
	t.Parallel()

	guest, err := sid.Parse("S-1-5-21-1004336348-1177238915-682003330-501")
	require.NoError(t, err)

	rid, ok := guest.RID()
	require.True(t, ok)
	assert.Equal(t, sid.GuestRID, rid)

	_, ok = sid.New(sid.NTAuthority).RID()
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	first, err := sid.Parse("S-1-5-21-1-2-3-501")
	require.NoError(t, err)

	same, err := sid.Parse("S-1-5-21-1-2-3-501")
	require.NoError(t, err)

	otherMachine, err := sid.Parse("S-1-5-21-9-9-9-501")
	require.NoError(t, err)

	assert.True(t, first.Equal(same))
	assert.False(t, first.Equal(otherMachine))
	assert.False(t, first.Equal(sid.BuiltinAdministrators()))
}

func TestHasWellKnownRID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		rid  uint32
		want bool
	}{
		{
			name: "guest matches guest rid",
			raw:  "S-1-5-21-1-2-3-501",
			rid:  sid.GuestRID,
			want: true,
		},
		{
			name: "administrator does not match guest rid",
			raw:  "S-1-5-21-1-2-3-500",
			rid:  sid.GuestRID,
			want: false,
		},
		{
			name: "rid digits inside a domain sub-authority do not match",
			raw:  "S-1-5-21-501-2-3-1001",
			rid:  sid.GuestRID,
			want: false,
		},
		{
			name: "non nt authority never matches",
			raw:  "S-1-1-501",
			rid:  sid.GuestRID,
			want: false,
		},
		{
			name: "builtin administrators group",
			raw:  "S-1-5-32-544",
			rid:  sid.AdministratorsRID,
			want: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := sid.Parse(testCase.raw)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, parsed.HasWellKnownRID(testCase.rid))
		})
	}
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, sid.ID{}.IsZero())
	assert.False(t, sid.BuiltinAdministrators().IsZero())
}
