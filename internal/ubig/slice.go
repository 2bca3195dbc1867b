package ubig

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/bigntt/internal/errors"
)

// Bound is an optional slice endpoint.
type Bound struct {
	Value int
	Set   bool
}

// At returns a bound set to v.
func At(v int) Bound { return Bound{Value: v, Set: true} }

// Slice selects positions start, start+step, ... up to but excluding stop,
// with the conventions of Python sequence slicing: unset bounds default to
// the ends of the sequence in traversal order, negative bounds count from
// the end, and a negative step walks backwards. A zero Step means the
// default step of 1.
type Slice struct {
	Start, Stop Bound
	Step        int
}

// All selects every position ([:]).
func All() Slice { return Slice{} }

// Range selects [start:stop].
func Range(start, stop int) Slice { return Slice{Start: At(start), Stop: At(stop)} }

// From selects [start:].
func From(start int) Slice { return Slice{Start: At(start)} }

// To selects [:stop].
func To(stop int) Slice { return Slice{Stop: At(stop)} }

// By returns s with the given step.
func (s Slice) By(step int) Slice {
	s.Step = step
	return s
}

func (s Slice) step() int {
	if s.Step == 0 {
		return 1
	}
	return s.Step
}

// String formats s in slice notation, e.g. "1:-1:2" or "::-1".
func (s Slice) String() string {
	var b strings.Builder
	if s.Start.Set {
		b.WriteString(strconv.Itoa(s.Start.Value))
	}
	b.WriteByte(':')
	if s.Stop.Set {
		b.WriteString(strconv.Itoa(s.Stop.Value))
	}
	if s.Step != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Step))
	}
	return b.String()
}

// ParseSlice parses slice notation such as "2:", ":-1", "::2" or "1:10:-3".
func ParseSlice(text string) (Slice, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Slice{}, apperrors.NewValueError("invalid slice %q", text)
	}
	var s Slice
	var err error
	if s.Start, err = parseBound(parts[0]); err != nil {
		return Slice{}, apperrors.NewValueError("invalid slice start in %q", text)
	}
	if s.Stop, err = parseBound(parts[1]); err != nil {
		return Slice{}, apperrors.NewValueError("invalid slice stop in %q", text)
	}
	if len(parts) == 3 {
		step, err := parseBound(parts[2])
		if err != nil {
			return Slice{}, apperrors.NewValueError("invalid slice step in %q", text)
		}
		if step.Set && step.Value == 0 {
			return Slice{}, apperrors.NewValueError("slice step cannot be zero")
		}
		s.Step = step.Value
	}
	return s, nil
}

func parseBound(p string) (Bound, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return Bound{}, nil
	}
	v, err := strconv.Atoi(p)
	if err != nil {
		return Bound{}, err
	}
	return At(v), nil
}

// Indices resolves s against a sequence of the given length. It returns
// the first position, the exclusive stop, the step and the number of
// selected positions; start + i*step for i < count enumerates them in
// traversal order.
func (s Slice) Indices(length int) (start, stop, step, count int) {
	step = s.step()
	start = clampBound(s.Start, length, step, 0, length-1)
	stop = clampBound(s.Stop, length, step, length, -1)
	switch {
	case step > 0 && start < stop:
		count = (stop-start-1)/step + 1
	case step < 0 && stop < start:
		count = (start-stop-1)/(-step) + 1
	}
	return start, stop, step, count
}

// clampBound applies the default and clamping rules to one endpoint.
func clampBound(b Bound, length, step, defUp, defDown int) int {
	if !b.Set {
		if step > 0 {
			return defUp
		}
		return defDown
	}
	v := b.Value
	if v < 0 {
		v += length
		if v < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return v
	}
	if v >= length {
		if step < 0 {
			return length - 1
		}
		return length
	}
	return v
}

// Positions returns the absolute positions s selects in traversal order.
func (s Slice) Positions(length int) []int {
	start, _, step, count := s.Indices(length)
	out := make([]int, count)
	for i := range out {
		out[i] = start + i*step
	}
	return out
}

// ascending returns the positions s selects sorted from lowest to highest.
func (s Slice) ascending(length int) []int {
	pos := s.Positions(length)
	if len(pos) > 1 && pos[0] > pos[1] {
		for i, j := 0, len(pos)-1; i < j; i, j = i+1, j-1 {
			pos[i], pos[j] = pos[j], pos[i]
		}
	}
	return pos
}

// normIndex maps a possibly negative index into [0, length).
func normIndex(view string, i, length int) (int, error) {
	j := i
	if j < 0 {
		j += length
	}
	if j < 0 || j >= length {
		return 0, apperrors.NewIndexError(view, i, length)
	}
	return j, nil
}
