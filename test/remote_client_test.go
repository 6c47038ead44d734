package test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The RemoteProvider is the client half of the auth/profile REST contract;
// these tests drive it against the real router so both halves are checked
// against each other.
func setupRemoteProvider(t *testing.T) (*auth.RemoteProvider, *testApp, func()) {
	t.Helper()
	r, app := setupRouter(t)
	srv := httptest.NewServer(r)
	return auth.NewRemoteProvider(srv.URL, internal.NewNopLogger()), app, srv.Close
}

func TestRemoteProvider_RegisterLoginErrors(t *testing.T) {
	ctx := context.Background()
	remote, _, stop := setupRemoteProvider(t)
	defer stop()

	user, token, err := remote.Register(ctx, "a@b.com", "Password1", "A")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = remote.Register(ctx, "a@b.com", "Password1", "A")
	assert.True(t, internal.IsKind(err, internal.KindDuplicateEmail))

	_, _, err = remote.Register(ctx, "b@c.com", "weak", "B")
	assert.True(t, internal.IsValidation(err))

	_, _, err = remote.Login(ctx, "a@b.com", "Nope12345")
	assert.True(t, internal.IsKind(err, internal.KindInvalidCredentials))

	user, _, err = remote.Login(ctx, "a@b.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestRemoteProvider_ProfileRoundtrip(t *testing.T) {
	ctx := context.Background()
	remote, _, stop := setupRemoteProvider(t)
	defer stop()

	registered, token, err := remote.Register(ctx, "a@b.com", "Password1", "A")
	require.NoError(t, err)

	fetched, err := remote.Profile(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, fetched.ID)
	assert.Equal(t, 1, fetched.CurrentDay)

	fetched.Name = "Renamed"
	fetched.CurrentDay = 3
	fetched.IsOnboardingComplete = true
	require.NoError(t, remote.UpdateProfile(ctx, token, fetched))

	fetched, err = remote.Profile(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.Equal(t, 3, fetched.CurrentDay)
	assert.True(t, fetched.IsOnboardingComplete)

	// A stale token is an invalid-credentials failure.
	require.NoError(t, remote.Logout(ctx, token))
	_, err = remote.Profile(ctx, token)
	assert.True(t, internal.IsKind(err, internal.KindInvalidCredentials))
}

func TestRemoteProvider_AdminSurface(t *testing.T) {
	ctx := context.Background()
	remote, app, stop := setupRemoteProvider(t)
	defer stop()

	_, adminToken, err := remote.Register(ctx, "admin@b.com", "Password1", "Admin")
	require.NoError(t, err)
	target, _, err := remote.Register(ctx, "user@b.com", "Password1", "User")
	require.NoError(t, err)

	// Admin calls are forbidden until the flag is set.
	_, err = remote.ListUsers(ctx, adminToken)
	assert.True(t, internal.IsKind(err, internal.KindInvalidCredentials))

	admin, err := app.users.Authenticate(ctx, "admin@b.com", "Password1")
	require.NoError(t, err)
	admin.IsAdmin = true
	require.NoError(t, app.users.UpdateUser(ctx, admin))

	users, err := remote.ListUsers(ctx, adminToken)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	toggled, err := remote.ToggleUserStatus(ctx, adminToken, target.ID)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.False(t, toggled.IsActive)

	require.NoError(t, remote.DeleteUser(ctx, adminToken, target.ID))
	_, err = app.users.GetUserByID(ctx, target.ID)
	assert.True(t, internal.IsKind(err, internal.KindNotFound))
}
