package identity

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cidadeviva/edu-admissions/pkg/model"
)

func TestContextRoundTrip(t *testing.T) {
	id := &Identity{PrincipalID: "p-1", Role: model.RoleAdmin, SessionID: "s-1"}
	ctx := Set(context.Background(), id)

	got, ok := Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestGetMissing(t *testing.T) {
	_, ok := Get(context.Background())
	assert.False(t, ok)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&Identity{Role: model.RoleAdmin}).IsAdmin())
	assert.False(t, (&Identity{Role: model.RoleApplicant}).IsAdmin())
	assert.False(t, (&Identity{Role: "Admin"}).IsAdmin(), "role match is exact")
}

func TestWithRemoteIP(t *testing.T) {
	id := (&Identity{}).WithRemoteIP(net.ParseIP("10.0.0.1"))
	assert.Equal(t, "10.0.0.1", id.RemoteIP.String())
}
