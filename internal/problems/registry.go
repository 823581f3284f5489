package problems

import (
	"fmt"
	"sort"

	"github.com/tOgg1/aoc2024/internal/display"
)

// Registry maps day numbers to solver factories.
type Registry struct {
	factories map[int]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[int]Factory)}
}

// Default returns a registry with every available solver registered.
func Default() *Registry {
	r := NewRegistry()
	r.mustRegister(1, NewDay1)
	r.mustRegister(14, NewDay14)
	return r
}

// Register adds a factory for day.
func (r *Registry) Register(day int, f Factory) error {
	if day < FirstDay || day > LastDay {
		return fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	if f == nil {
		return fmt.Errorf("nil factory for day %d", day)
	}
	if _, exists := r.factories[day]; exists {
		return fmt.Errorf("day %d already registered", day)
	}
	r.factories[day] = f
	return nil
}

func (r *Registry) mustRegister(day int, f Factory) {
	if err := r.Register(day, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for day. Days without a registered solver get
// an Unsolved solver; days outside the calendar return ErrUnknownDay.
func (r *Registry) Lookup(day int) (Factory, error) {
	if day < FirstDay || day > LastDay {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	if f, ok := r.factories[day]; ok {
		return f, nil
	}
	return func(display.Sender) Solver { return Unsolved{} }, nil
}

// Solved reports whether day has a registered solver.
func (r *Registry) Solved(day int) bool {
	_, ok := r.factories[day]
	return ok
}

// Days returns every calendar day in order.
func (r *Registry) Days() []int {
	days := make([]int, 0, LastDay-FirstDay+1)
	for d := FirstDay; d <= LastDay; d++ {
		days = append(days, d)
	}
	return days
}

// SolvedDays returns the registered days in order.
func (r *Registry) SolvedDays() []int {
	days := make([]int, 0, len(r.factories))
	for d := range r.factories {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
