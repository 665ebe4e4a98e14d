// Package placeholder contains the pure evaluators for the replacement
// template language: counters, dates and text operations.
// Evaluators never touch the filesystem directly; file timestamps come
// through the Timestamps interface.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
)

// CounterKeyword is the placeholder name for counters.
const CounterKeyword = "counter"

// counterPattern matches {counter} and {counter(start, step, padding)} with
// every argument optional.
var counterPattern = regexp.MustCompile(`\{counter(?:\((\d+)?,?\s*(\d+)?,?\s*(\d+)?\))?\}`)

// counterSlot is the running state of one {counter...} occurrence.
type counterSlot struct {
	value   int
	step    int
	padding int
}

// CounterSlots holds one independent counter per textual counter occurrence
// in a replacement template. Slot N belongs to the Nth occurrence.
// A CounterSlots value is scoped to a single batch.
type CounterSlots struct {
	slots []counterSlot
}

// NewCounterSlots scans template once and seeds a slot for every counter
// occurrence with that occurrence's start argument (default 1).
func NewCounterSlots(template string) *CounterSlots {
	matches := counterPattern.FindAllStringSubmatch(template, -1)
	cs := &CounterSlots{slots: make([]counterSlot, 0, len(matches))}
	for _, m := range matches {
		cs.slots = append(cs.slots, counterSlot{
			value:   atoiDefault(m[1], 1),
			step:    atoiDefault(m[2], 1),
			padding: atoiDefault(m[3], 1),
		})
	}
	return cs
}

// Len returns the number of slots.
func (c *CounterSlots) Len() int {
	return len(c.slots)
}

// Values returns a snapshot of the current slot values.
func (c *CounterSlots) Values() []int {
	out := make([]int, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.value
	}
	return out
}

// Apply replaces every counter occurrence in template, in order, with the
// zero-padded value of its slot and advances each used slot by its step.
// Occurrences beyond the seeded slot count are left untouched.
func (c *CounterSlots) Apply(template string) string {
	if len(c.slots) == 0 {
		return template
	}

	i := 0
	return counterPattern.ReplaceAllStringFunc(template, func(match string) string {
		if i >= len(c.slots) {
			return match
		}
		slot := &c.slots[i]
		i++

		formatted := fmt.Sprintf("%0*d", slot.padding, slot.value)
		slot.value += slot.step
		return formatted
	})
}

// HasCounter reports whether template contains at least one counter.
func HasCounter(template string) bool {
	return counterPattern.MatchString(template)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
