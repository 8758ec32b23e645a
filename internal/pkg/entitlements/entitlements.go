// Package entitlements maps subscription plans to resource limits and
// visibility features and decides whether catalog mutations fit within them.
// Every function is a pure lookup against the plan table; nothing in here
// touches storage.
package entitlements

import (
	"fmt"
	"strings"
)

type Plan string

const (
	PlanFree      Plan = "free"
	PlanPremium   Plan = "premium"
	PlanDestacado Plan = "destacado"
)

// Unlimited marks a limit without a ceiling. A sentinel instead of a big
// number so nobody ever hits an accidental cap.
const Unlimited = -1

// Limits is one row of the plan table.
type Limits struct {
	MaxImages         int
	MaxMenuItems      int
	FeaturedPlacement bool
	VerifiedBadge     bool
}

// UnknownPlanError signals a persisted plan value outside the closed set.
// It is a data-integrity problem, not user error: callers must abort the
// triggering mutation instead of guessing a default tier.
type UnknownPlanError struct {
	Plan string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown subscription plan %q", e.Plan)
}

var planTable = map[Plan]Limits{
	PlanFree:      {MaxImages: 3, MaxMenuItems: 5},
	PlanPremium:   {MaxImages: Unlimited, MaxMenuItems: Unlimited},
	PlanDestacado: {MaxImages: Unlimited, MaxMenuItems: Unlimited, FeaturedPlacement: true, VerifiedBadge: true},
}

// Normalize lowercases and trims a raw plan string without validating it.
func Normalize(plan string) Plan {
	return Plan(strings.ToLower(strings.TrimSpace(plan)))
}

// LimitsFor returns the plan table row for the given plan.
func LimitsFor(plan Plan) (Limits, error) {
	l, ok := planTable[plan]
	if !ok {
		return Limits{}, &UnknownPlanError{Plan: string(plan)}
	}
	return l, nil
}

// AdmitImages reports how many of the requested images still fit under the
// plan's image cap. The caller uploads exactly that many and tells the user
// about the rest; running into the cap is an expected outcome, not an error.
func AdmitImages(plan Plan, currentCount, requestedCount int) (int, error) {
	l, err := LimitsFor(plan)
	if err != nil {
		return 0, err
	}
	if requestedCount < 0 {
		requestedCount = 0
	}
	if l.MaxImages == Unlimited {
		return requestedCount, nil
	}
	remaining := l.MaxImages - currentCount
	if remaining <= 0 {
		return 0, nil
	}
	if requestedCount > remaining {
		return remaining, nil
	}
	return requestedCount, nil
}

// CanAddImages reports whether all requested images fit under the cap.
func CanAddImages(plan Plan, currentCount, requestedCount int) (bool, error) {
	admitted, err := AdmitImages(plan, currentCount, requestedCount)
	if err != nil {
		return false, err
	}
	return admitted == requestedCount, nil
}

// CanAddMenuItem reports whether one more menu item fits under the cap.
func CanAddMenuItem(plan Plan, currentCount int) (bool, error) {
	l, err := LimitsFor(plan)
	if err != nil {
		return false, err
	}
	if l.MaxMenuItems == Unlimited {
		return true, nil
	}
	return currentCount < l.MaxMenuItems, nil
}

// IsFeatured reports featured placement for the plan. Unknown plans get
// nothing.
func IsFeatured(plan Plan) bool {
	l, err := LimitsFor(plan)
	if err != nil {
		return false
	}
	return l.FeaturedPlacement
}

// IsVerified reports the verified badge for the plan. The legacy featured
// override on old business rows is handled by Business.IsVerified, not here.
func IsVerified(plan Plan) bool {
	l, err := LimitsFor(plan)
	if err != nil {
		return false
	}
	return l.VerifiedBadge
}
