package inspector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
	"github.com/devantler-tech/guestctl/pkg/svc/directory/fake"
	"github.com/devantler-tech/guestctl/pkg/svc/inspector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func administrators() directory.Group {
	return directory.Group{Name: "Administrators", ID: sid.BuiltinAdministrators()}
}

func TestIsMember(t *testing.T) {
	t.Parallel()

	guest, err := sid.Parse("S-1-5-21-1-2-3-501")
	require.NoError(t, err)

	other, err := sid.Parse("S-1-5-21-1-2-3-1001")
	require.NoError(t, err)

	tests := []struct {
		name    string
		members []sid.ID
		want    bool
	}{
		{name: "member", members: []sid.ID{other, guest}, want: true},
		{name: "not a member", members: []sid.ID{other}, want: false},
		{name: "empty group", members: nil, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := fake.New()
			for _, member := range testCase.members {
				dir.AddGroupMember("Administrators", member)
			}

			member, err := inspector.New(dir).IsMember(context.Background(), administrators(), guest)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, member)
		})
	}
}

func TestIsMember_QueryFailureMeansNotAMember(t *testing.T) {
	t.Parallel()

	guest, err := sid.Parse("S-1-5-21-1-2-3-501")
	require.NoError(t, err)

	dir := fake.New()
	dir.AddGroupMember("Administrators", guest)
	dir.MembersErr = errors.New("rpc unavailable")

	member, err := inspector.New(dir).IsMember(context.Background(), administrators(), guest)
	require.Error(t, err)
	assert.False(t, member)
}

func TestEnabledState(t *testing.T) {
	t.Parallel()

	insp := inspector.New(fake.New())

	assert.True(t, insp.EnabledState(directory.Account{Enabled: true}))
	assert.False(t, insp.EnabledState(directory.Account{Enabled: false}))
}
