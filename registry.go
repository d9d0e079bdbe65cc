package vcard

import (
	"reflect"
	"sync"
)

var (
	plans   = make(map[reflect.Type]*populatePlan)
	plansMu sync.RWMutex
)

// planFor returns a cached populate plan or builds a new one.
// Plans are cached by struct type; a type whose tags fail to parse is
// not cached, so every call reports the same error.
func planFor(rt reflect.Type) (*populatePlan, error) {
	// Fast path: read-lock cache check
	plansMu.RLock()
	if cached, ok := plans[rt]; ok {
		plansMu.RUnlock()
		return cached, nil
	}
	plansMu.RUnlock()

	// Slow path: build and cache with write-lock
	plansMu.Lock()
	defer plansMu.Unlock()

	if cached, ok := plans[rt]; ok {
		return cached, nil
	}

	plan, err := buildPlan(rt)
	if err != nil {
		return nil, err
	}

	plans[rt] = plan
	return plan, nil
}

// ResetPlans clears the populate plan cache.
// This is primarily useful for test isolation.
func ResetPlans() {
	plansMu.Lock()
	defer plansMu.Unlock()
	plans = make(map[reflect.Type]*populatePlan)
}
