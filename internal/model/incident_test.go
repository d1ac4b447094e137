package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncidentStatusTransitions(t *testing.T) {
	open := &Incident{Status: IncidentStatusOpen}
	assert.True(t, open.CanTransitionTo(IncidentStatusAcknowledged))
	assert.True(t, open.CanTransitionTo(IncidentStatusResolved))

	acked := &Incident{Status: IncidentStatusAcknowledged}
	assert.True(t, acked.CanTransitionTo(IncidentStatusResolved))
	assert.False(t, acked.CanTransitionTo(IncidentStatusOpen))

	// resolved 是终态
	resolved := &Incident{Status: IncidentStatusResolved}
	assert.False(t, resolved.CanTransitionTo(IncidentStatusOpen))
	assert.False(t, resolved.CanTransitionTo(IncidentStatusAcknowledged))
	assert.False(t, resolved.CanTransitionTo(IncidentStatusResolved))
}
