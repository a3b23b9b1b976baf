package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteActionLog writes one "row col code" line per action.
func WriteActionLog(w io.Writer, actions []PlayerAction) error {
	bw := bufio.NewWriter(w)
	for _, a := range actions {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", a.Pos.Row, a.Pos.Col, int(a.Type)); err != nil {
			return fmt.Errorf("core: write action log: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("core: write action log: %w", err)
	}
	return nil
}

// ReadActionLog parses a log written by WriteActionLog. Blank lines are
// skipped; a malformed line or an unknown action code is an error.
func ReadActionLog(r io.Reader) ([]PlayerAction, error) {
	var actions []PlayerAction
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("core: action log line %d: want 3 fields, got %d", line, len(fields))
		}
		var nums [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("core: action log line %d: %w", line, err)
			}
			nums[i] = n
		}
		t := ActionType(nums[2])
		if !t.Valid() {
			return nil, fmt.Errorf("core: action log line %d: unknown action code %d", line, nums[2])
		}
		actions = append(actions, PlayerAction{Pos: P(nums[0], nums[1]), Type: t})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("core: read action log: %w", err)
	}
	return actions, nil
}
