package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationAccept(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "bob@x", time.Now().Add(time.Minute))
	require.NoError(t, inv.Accept("bob@x"))
	assert.Equal(t, Accepted, inv.Status)
}

func TestInvitationAcceptWrongInvitee(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "bob@x", time.Now().Add(time.Minute))
	err := inv.Accept("mallory@x")
	require.Error(t, err)
	assert.Equal(t, Pending, inv.Status)
}

func TestInvitationExpiry(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "bob@x", time.Now().Add(-time.Second))
	err := inv.Accept("bob@x")
	require.Error(t, err)
	assert.Equal(t, KindInvitationExpired, KindOf(err))
	assert.Equal(t, Expired, inv.Status)
}

func TestDecliningDeclinedInvitationIsNoOp(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "bob@x", time.Now().Add(time.Minute))
	require.NoError(t, inv.Decline("bob@x"))
	err := inv.Decline("bob@x")
	require.Error(t, err)
	assert.Equal(t, KindInvitationNotPending, KindOf(err))
	assert.Equal(t, Declined, inv.Status)
}

func TestInvitationTransitionsAreMonotonic(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "bob@x", time.Now().Add(time.Minute))
	require.NoError(t, inv.Accept("bob@x"))
	err := inv.Decline("bob@x")
	require.Error(t, err)
	assert.Equal(t, Accepted, inv.Status, "terminal status must not change")
}
