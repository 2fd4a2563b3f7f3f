package shooter

import (
	"fmt"
	"strconv"
	"strings"
)

// ArenaSource supplies the play field. It is read once per Start or Restart.
type ArenaSource interface {
	Arena() (Arena, error)
}

// FixedArena is an ArenaSource that always returns the same rectangle.
type FixedArena Arena

// Arena implements ArenaSource.
func (f FixedArena) Arena() (Arena, error) {
	a := Arena(f)
	return a, a.Validate()
}

// ParseArena parses "ROWSxCOLS" or "ROWSxCOLS+TOP+LEFT", e.g. "20x40" or "20x40+2+1".
func ParseArena(s string) (Arena, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "+")
	if len(parts) != 1 && len(parts) != 3 {
		return Arena{}, fmt.Errorf("shooter: arena %q: want ROWSxCOLS[+TOP+LEFT]", s)
	}

	size := strings.SplitN(strings.ToLower(parts[0]), "x", 2)
	if len(size) != 2 {
		return Arena{}, fmt.Errorf("shooter: arena %q: want ROWSxCOLS[+TOP+LEFT]", s)
	}

	fields := append(size, parts[1:]...)
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Arena{}, fmt.Errorf("shooter: arena %q: %w", s, err)
		}
		nums[i] = n
	}

	a := Arena{Rows: nums[0], Cols: nums[1]}
	if len(nums) == 4 {
		a.Top, a.Left = nums[2], nums[3]
	}
	if err := a.Validate(); err != nil {
		return Arena{}, err
	}
	return a, nil
}
