package family_test

import (
	"testing"

	"github.com/amirasaad/balabank/pkg/domain/family"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	f, err := family.New("The Starks")
	require.NoError(t, err)
	assert.Equal(t, "The Starks", f.Name)
	assert.Len(t, f.InviteCode, 6)

	other, err := family.New("The Lannisters")
	require.NoError(t, err)
	assert.NotEqual(t, f.InviteCode, other.InviteCode)
}

func TestNew_EmptyName(t *testing.T) {
	_, err := family.New("")
	assert.Error(t, err)
}

func TestJoinRequestTransitions(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		r := family.NewJoinRequest(uuid.New(), uuid.New())
		require.Equal(t, family.RequestPending, r.Status)
		require.NoError(t, r.Approve())
		assert.Equal(t, family.RequestApproved, r.Status)
	})

	t.Run("reject pending", func(t *testing.T) {
		r := family.NewJoinRequest(uuid.New(), uuid.New())
		require.NoError(t, r.Reject())
		assert.Equal(t, family.RequestRejected, r.Status)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		r := family.NewJoinRequest(uuid.New(), uuid.New())
		require.NoError(t, r.Approve())
		assert.ErrorIs(t, r.Approve(), family.ErrRequestNotPending)
		assert.ErrorIs(t, r.Reject(), family.ErrRequestNotPending)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		r := family.NewJoinRequest(uuid.New(), uuid.New())
		require.NoError(t, r.Reject())
		assert.ErrorIs(t, r.Approve(), family.ErrRequestNotPending)
	})
}
