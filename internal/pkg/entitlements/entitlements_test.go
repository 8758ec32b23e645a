package entitlements

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		plan Plan
		want Limits
	}{
		{plan: PlanFree, want: Limits{MaxImages: 3, MaxMenuItems: 5}},
		{plan: PlanPremium, want: Limits{MaxImages: Unlimited, MaxMenuItems: Unlimited}},
		{plan: PlanDestacado, want: Limits{MaxImages: Unlimited, MaxMenuItems: Unlimited, FeaturedPlacement: true, VerifiedBadge: true}},
	}

	for _, tt := range tests {
		got, err := LimitsFor(tt.plan)
		require.NoError(t, err, "plan %q", tt.plan)
		assert.Equal(t, tt.want, got, "plan %q", tt.plan)
	}
}

func TestLimitsForUnknownPlan(t *testing.T) {
	for _, raw := range []string{"", "gold", "FREE ", "premium_max"} {
		_, err := LimitsFor(Plan(raw))
		require.Error(t, err, "plan %q", raw)

		var upe *UnknownPlanError
		assert.True(t, errors.As(err, &upe), "plan %q should yield UnknownPlanError", raw)
		assert.Equal(t, raw, upe.Plan)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, PlanDestacado, Normalize("  Destacado "))
	assert.Equal(t, PlanFree, Normalize("FREE"))
	// Normalize does not validate
	assert.Equal(t, Plan("gold"), Normalize("gold"))
}

func TestAdmitImages(t *testing.T) {
	tests := []struct {
		name      string
		plan      Plan
		current   int
		requested int
		want      int
	}{
		{name: "free with room", plan: PlanFree, current: 0, requested: 2, want: 2},
		{name: "free exact fit", plan: PlanFree, current: 1, requested: 2, want: 2},
		{name: "free partial", plan: PlanFree, current: 2, requested: 5, want: 1},
		{name: "free at cap", plan: PlanFree, current: 3, requested: 1, want: 0},
		{name: "free over cap", plan: PlanFree, current: 7, requested: 1, want: 0},
		{name: "free negative request", plan: PlanFree, current: 0, requested: -3, want: 0},
		{name: "premium unlimited", plan: PlanPremium, current: 5000, requested: 100, want: 100},
		{name: "destacado unlimited", plan: PlanDestacado, current: 0, requested: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdmitImages(tt.plan, tt.current, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdmitImagesUnknownPlan(t *testing.T) {
	_, err := AdmitImages(Plan("unknown_plan"), 0, 1)
	var upe *UnknownPlanError
	require.True(t, errors.As(err, &upe))
}

func TestCanAddImages(t *testing.T) {
	ok, err := CanAddImages(PlanFree, 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanAddImages(PlanFree, 3, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CanAddImages(PlanFree, 2, 5)
	require.NoError(t, err)
	assert.False(t, ok, "only one slot remains, five requested")

	ok, err = CanAddImages(PlanPremium, 9999, 9999)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAddMenuItem(t *testing.T) {
	ok, err := CanAddMenuItem(PlanFree, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanAddMenuItem(PlanFree, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CanAddMenuItem(PlanDestacado, 100000)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = CanAddMenuItem(Plan("silver"), 0)
	var upe *UnknownPlanError
	require.True(t, errors.As(err, &upe))
}

func TestFeatureFlags(t *testing.T) {
	assert.False(t, IsFeatured(PlanFree))
	assert.False(t, IsFeatured(PlanPremium))
	assert.True(t, IsFeatured(PlanDestacado))

	assert.False(t, IsVerified(PlanFree))
	assert.False(t, IsVerified(PlanPremium))
	assert.True(t, IsVerified(PlanDestacado))

	// unknown plans never unlock features
	assert.False(t, IsFeatured(Plan("bogus")))
	assert.False(t, IsVerified(Plan("bogus")))
}
