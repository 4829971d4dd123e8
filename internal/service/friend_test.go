package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/testhelpers"
)

type friendFixture struct {
	db                *gorm.DB
	svc               *service.FriendService
	alice, bob, carol *models.UserProfile
}

func setupFriendTest(t *testing.T) *friendFixture {
	db := testhelpers.SetupTestDatabase(t)
	return &friendFixture{
		db:    db,
		svc:   service.NewFriendService(db, newAuthorizer(t)),
		alice: testhelpers.SeedUser(t, db, "alice@example.com", "Alice", "A"),
		bob:   testhelpers.SeedUser(t, db, "bob@example.com", "Bob", "B"),
		carol: testhelpers.SeedUser(t, db, "carol@example.com", "Carol", "C"),
	}
}

func (f *friendFixture) count(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&models.Friendship{}).Count(&n).Error)
	return n
}

func TestSendRequest(t *testing.T) {
	f := setupFriendTest(t)

	friendship, err := f.svc.SendRequest(context.Background(), f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	assert.NotZero(t, friendship.ID)
	assert.Equal(t, f.alice.ID, friendship.RequesterID)
	assert.Equal(t, f.bob.ID, friendship.AddresseeID)
	assert.Equal(t, models.FriendStatusPending, friendship.Status)
	assert.Nil(t, friendship.UpdatedAt)
}

func TestSendRequestToSelf(t *testing.T) {
	f := setupFriendTest(t)

	_, err := f.svc.SendRequest(context.Background(), f.alice.ID, f.alice.ID)
	assert.ErrorIs(t, err, service.ErrInvalidOperation)
	assert.Zero(t, f.count(t))
}

func TestSendRequestToUnknownUser(t *testing.T) {
	f := setupFriendTest(t)

	_, err := f.svc.SendRequest(context.Background(), f.alice.ID, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Zero(t, f.count(t))
}

func TestSendRequestDuplicateEitherDirection(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	_, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = f.svc.SendRequest(ctx, f.bob.ID, f.alice.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	assert.Equal(t, int64(1), f.count(t))
}

func TestConcurrentOppositeRequestsKeepOneRow(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	pairs := [][2]uint{{f.alice.ID, f.bob.ID}, {f.bob.ID, f.alice.ID}}
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, from, to uint) {
			defer wg.Done()
			_, errs[i] = f.svc.SendRequest(ctx, from, to)
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, int64(1), f.count(t))
}

func TestRespond(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()
	respondedAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	service.SetFriendClock(f.svc, func() time.Time { return respondedAt })

	request, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Respond(ctx, request.ID, f.bob.ID, models.FriendStatusAccepted))

	var stored models.Friendship
	require.NoError(t, f.db.First(&stored, request.ID).Error)
	assert.Equal(t, models.FriendStatusAccepted, stored.Status)
	require.NotNil(t, stored.UpdatedAt)
	assert.True(t, stored.UpdatedAt.Equal(respondedAt))
}

func TestRespondOnlyByAddressee(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	request, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	for _, caller := range []uint{f.alice.ID, f.carol.ID, 0} {
		err := f.svc.Respond(ctx, request.ID, caller, models.FriendStatusAccepted)
		assert.ErrorIs(t, err, service.ErrForbidden, "caller %d", caller)
	}

	var stored models.Friendship
	require.NoError(t, f.db.First(&stored, request.ID).Error)
	assert.Equal(t, models.FriendStatusPending, stored.Status)
}

func TestRespondValidation(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	request, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	for _, status := range []models.FriendStatus{models.FriendStatusPending, models.FriendStatusBlocked, "maybe"} {
		err := f.svc.Respond(ctx, request.ID, f.bob.ID, status)
		assert.ErrorIs(t, err, service.ErrValidation, "status %s", status)
	}

	assert.ErrorIs(t, f.svc.Respond(ctx, 999, f.bob.ID, models.FriendStatusRejected), service.ErrNotFound)
}

func TestRemove(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	request, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Respond(ctx, request.ID, f.bob.ID, models.FriendStatusRejected))

	assert.ErrorIs(t, f.svc.Remove(ctx, request.ID, f.carol.ID), service.ErrForbidden)
	require.NoError(t, f.svc.Remove(ctx, request.ID, f.alice.ID))
	assert.Zero(t, f.count(t))
	assert.ErrorIs(t, f.svc.Remove(ctx, request.ID, f.alice.ID), service.ErrNotFound)
}

func TestListFriendsAndPending(t *testing.T) {
	f := setupFriendTest(t)
	ctx := context.Background()

	ab, err := f.svc.SendRequest(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	_, err = f.svc.SendRequest(ctx, f.carol.ID, f.bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Respond(ctx, ab.ID, f.bob.ID, models.FriendStatusAccepted))

	for _, userID := range []uint{f.alice.ID, f.bob.ID} {
		friends, err := f.svc.ListFriends(ctx, userID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		require.NotNil(t, friends[0].Requester)
		require.NotNil(t, friends[0].Addressee)
		assert.Equal(t, "Alice", friends[0].Requester.FirstName)
		assert.Equal(t, "Bob", friends[0].Addressee.FirstName)
	}

	friends, err := f.svc.ListFriends(ctx, f.carol.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	pending, err := f.svc.ListPending(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.carol.ID, pending[0].RequesterID)
	require.NotNil(t, pending[0].Requester)
	assert.Equal(t, "Carol", pending[0].Requester.FirstName)

	pending, err = f.svc.ListPending(ctx, f.carol.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
