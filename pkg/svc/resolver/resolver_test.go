package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory/fake"
	"github.com/devantler-tech/guestctl/pkg/svc/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestID(t *testing.T) sid.ID {
	t.Helper()

	id, err := sid.Parse("S-1-5-21-1004336348-1177238915-682003330-501")
	require.NoError(t, err)

	return id
}

func TestAccountByWellKnownRID_MatchesByIdentifierNotName(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	adminID, err := sid.Parse("S-1-5-21-1004336348-1177238915-682003330-500")
	require.NoError(t, err)
	dir.AddAccount("Administrator", adminID, true)
	dir.AddAccount("Visitante", guestID(t), false)

	account, err := resolver.New(dir).AccountByWellKnownRID(context.Background(), sid.GuestRID)
	require.NoError(t, err)
	assert.Equal(t, "Visitante", account.Name)
	assert.True(t, account.ID.Equal(guestID(t)))
}

func TestAccountByWellKnownRID_StableAcrossRename(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	dir.AddAccount("Guest", guestID(t), true)

	res := resolver.New(dir)

	first, err := res.AccountByWellKnownRID(context.Background(), sid.GuestRID)
	require.NoError(t, err)

	dir.RenameAccount(guestID(t), "NotAGuestAnymore")

	second, err := res.AccountByWellKnownRID(context.Background(), sid.GuestRID)
	require.NoError(t, err)

	assert.True(t, first.ID.Equal(second.ID))
	assert.Equal(t, "NotAGuestAnymore", second.Name)
}

func TestAccountByWellKnownRID_NotFound(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	adminID, err := sid.Parse("S-1-5-21-1-2-3-500")
	require.NoError(t, err)
	dir.AddAccount("Administrator", adminID, true)

	_, err = resolver.New(dir).AccountByWellKnownRID(context.Background(), sid.GuestRID)
	require.ErrorIs(t, err, resolver.ErrAccountNotFound)
}

func TestAccountByWellKnownRID_EnumerationFailure(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	dir.AccountsErr = errors.New("access denied")

	_, err := resolver.New(dir).AccountByWellKnownRID(context.Background(), sid.GuestRID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, resolver.ErrAccountNotFound)
}

func TestGroupByStableID_TranslatesLocalizedName(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	dir.SetGroupName(sid.BuiltinAdministrators(), "Administratoren")

	group, err := resolver.New(dir).GroupByStableID(
		context.Background(),
		sid.BuiltinAdministrators(),
		resolver.DefaultAdministratorsName,
	)
	require.NoError(t, err)
	assert.Equal(t, "Administratoren", group.Name)
	assert.True(t, group.ID.Equal(sid.BuiltinAdministrators()))
}

func TestGroupByStableID_FallsBackOnTranslationFailure(t *testing.T) {
	t.Parallel()

	dir := fake.New()
	dir.LookupErr = errors.New("rpc unavailable")

	group, err := resolver.New(dir).GroupByStableID(
		context.Background(),
		sid.BuiltinAdministrators(),
		resolver.DefaultAdministratorsName,
	)
	require.Error(t, err)
	assert.Equal(t, resolver.DefaultAdministratorsName, group.Name)
	assert.True(t, group.ID.Equal(sid.BuiltinAdministrators()))
}
