package rl

// #region imports
import (
	"fmt"
	"math/rand"
)

// #endregion

// #region mask

// Mask tracks which actions remain selectable. Index 0 is the idle action
// and is never selectable; indices flip from 1 to 0 as items are exhausted.
type Mask []int

// NewMask returns a mask with every item action enabled.
func NewMask(n int) Mask {
	m := make(Mask, n)
	for i := 1; i < n; i++ {
		m[i] = 1
	}
	return m
}

// Disable marks an action as no longer selectable.
func (m Mask) Disable(action int) { m[action] = 0 }

// Sum returns the number of selectable actions.
func (m Mask) Sum() int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// Exhausted reports whether no action remains selectable.
func (m Mask) Exhausted() bool { return m.Sum() == 0 }

// #endregion

// #region selector

// Selector draws actions epsilon-greedily from a Q-table. The random source
// is injected so sessions can be replayed deterministically.
type Selector struct {
	Epsilon float64
	rng     *rand.Rand
}

// NewSelector builds a selector around a seeded random source.
func NewSelector(epsilon float64, rng *rand.Rand) *Selector {
	return &Selector{Epsilon: epsilon, rng: rng}
}

// Choose picks the next action for state. A uniform draw above epsilon
// explores uniformly over the still-enabled actions; otherwise it exploits,
// breaking ties uniformly among the masked row's maxima.
func (sel *Selector) Choose(q *QTable, state int, mask Mask) (int, error) {
	if mask.Exhausted() {
		return 0, fmt.Errorf("choose action: mask exhausted in state %d", state)
	}
	if sel.rng.Float64() > sel.Epsilon {
		var open []int
		for a, v := range mask {
			if v == 1 {
				open = append(open, a)
			}
		}
		return open[sel.rng.Intn(len(open))], nil
	}

	row := q.Row(state)
	masked := make([]float64, len(row))
	for a := range row {
		masked[a] = row[a] * float64(mask[a])
	}
	best := masked[0]
	for _, v := range masked[1:] {
		if v > best {
			best = v
		}
	}
	var ties []int
	for a, v := range masked {
		if v == best {
			ties = append(ties, a)
		}
	}
	return ties[sel.rng.Intn(len(ties))], nil
}

// #endregion

// #region environment

// State is the selector's observation after an action resolves.
type State struct {
	Index    int
	Terminal bool
}

// Feedback maps a probed item's outcome onto the next state and reward:
// an exhausted mask ends the session with a completion bonus, an explicit
// stop ends it with none, and otherwise the probed action becomes the next
// state with the item's mean-severity reward.
func Feedback(action int, reward float64, terminate bool, mask Mask) (State, float64) {
	if mask.Exhausted() {
		return State{Terminal: true}, 10
	}
	if terminate {
		return State{Terminal: true}, 0
	}
	return State{Index: action}, reward
}

// Update applies one Q-learning step in place.
func Update(q *QTable, state, action int, reward float64, next State, alpha, gamma float64) {
	target := reward
	if !next.Terminal {
		target = reward + gamma*q.MaxRow(next.Index)
	}
	q.Values[state][action] += alpha * (target - q.Values[state][action])
}

// #endregion
