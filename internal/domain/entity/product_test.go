package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	pending := &Product{Status: ProductPending}
	accepted := &Product{Status: ProductAccepted}
	featured := &Product{Status: ProductAccepted, Featured: true}
	rejected := &Product{Status: ProductRejected}

	tests := []struct {
		name    string
		product *Product
		action  ModerationAction
		want    bool
	}{
		{"accept pending", pending, ActionAccept, true},
		{"reject pending", pending, ActionReject, true},
		{"feature pending", pending, ActionFeature, false},
		{"feature accepted", accepted, ActionFeature, true},
		{"reject accepted", accepted, ActionReject, false},
		{"feature featured", featured, ActionFeature, false},
		{"accept rejected", rejected, ActionAccept, false},
		{"unknown action", pending, ModerationAction("bump"), false},
		{"nil product", nil, ActionAccept, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.product, tt.action))
		})
	}
}

func TestApplyAndTerminal(t *testing.T) {
	p := Product{ID: "p1", Status: ProductPending}

	accepted := p.Apply(ActionAccept)
	assert.Equal(t, ProductAccepted, accepted.Status)
	assert.False(t, accepted.IsTerminal())
	assert.Equal(t, ProductPending, p.Status, "Apply must not mutate the receiver")

	featured := accepted.Apply(ActionFeature)
	assert.True(t, featured.Featured)
	assert.True(t, featured.IsTerminal())

	rejected := p.Apply(ActionReject)
	assert.True(t, rejected.IsTerminal())
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole(" Admin "))
	assert.Equal(t, RoleModerator, ParseRole("moderator"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}

func TestOwnedBy(t *testing.T) {
	p := &Product{Owner: Owner{Email: "Ada@X.io"}}

	assert.True(t, p.OwnedBy("ada@x.io"))
	assert.True(t, p.OwnedBy("Ada@X.io"))
	assert.False(t, p.OwnedBy("bob@x.io"))
	assert.False(t, p.OwnedBy(""))
}
