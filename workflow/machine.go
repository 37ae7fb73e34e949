package workflow

import (
	"fmt"

	"livestock-app/metrics"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"
)

// Machine is a transition table for one status lifecycle.
type Machine[S ~string] struct {
	entity      string
	transitions map[S][]S
}

func New[S ~string](entity string, transitions map[S][]S) *Machine[S] {
	return &Machine[S]{entity: entity, transitions: transitions}
}

func (m *Machine[S]) Entity() string {
	return m.entity
}

func (m *Machine[S]) CanTransition(from, to S) bool {
	return slices.Contains(m.transitions[from], to)
}

// Targets lists the statuses reachable from the given one.
func (m *Machine[S]) Targets(from S) []S {
	return slices.Clone(m.transitions[from])
}

// Transition validates from -> to and records it. The error is a 400 *fiber.Error
// carrying the user facing message.
func (m *Machine[S]) Transition(from, to S) error {
	if !m.CanTransition(from, to) {
		return fiber.NewError(fiber.StatusBadRequest, InvalidTransitionMessage(string(from), string(to)))
	}
	metrics.WorkflowTransitions.WithLabelValues(m.entity, string(from), string(to)).Inc()
	return nil
}

func InvalidTransitionMessage(from, to string) string {
	return fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s", from, to)
}
