package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessCurrentPlan(t *testing.T) {
	b := &Business{}
	assert.Equal(t, PLAN_FREE, b.CurrentPlan())

	b.SubscriptionPlan = PLAN_PREMIUM
	assert.Equal(t, PLAN_PREMIUM, b.CurrentPlan())

	b.SubscriptionPlan = PLAN_DESTACADO
	assert.Equal(t, PLAN_DESTACADO, b.CurrentPlan())
}

func TestBusinessIsFeatured(t *testing.T) {
	b := &Business{SubscriptionPlan: PLAN_DESTACADO}
	assert.True(t, b.IsFeatured())

	b.SubscriptionPlan = PLAN_PREMIUM
	assert.False(t, b.IsFeatured())

	// the legacy column alone does not grant featured placement
	b = &Business{SubscriptionPlan: PLAN_FREE, Featured: true}
	assert.False(t, b.IsFeatured())
}

func TestBusinessIsVerified(t *testing.T) {
	b := &Business{SubscriptionPlan: PLAN_DESTACADO}
	assert.True(t, b.IsVerified())

	b = &Business{SubscriptionPlan: PLAN_FREE}
	assert.False(t, b.IsVerified())

	// pre-plan rows flagged featured keep their badge
	b = &Business{SubscriptionPlan: PLAN_FREE, Featured: true}
	assert.True(t, b.IsVerified())
}

func TestBusinessValidate(t *testing.T) {
	b := &Business{Name: "Taqueria La Esquina", Category: "Taqueria"}
	assert.NoError(t, b.Validate())

	b.Name = "x"
	assert.Error(t, b.Validate())
}
