// ABOUTME: Reads JSON-lines traces back and replays them into a terminal device
// ABOUTME: Replay re-encodes each event to wire bytes so it goes through the real decoder

package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mailru/easyjson"
)

// Read parses every event in r. Blank lines are skipped.
func Read(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := easyjson.Unmarshal(sc.Bytes(), &e); err != nil {
			return events, fmt.Errorf("trace line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("reading trace: %w", err)
	}
	return events, nil
}

// Feeder accepts input bytes, e.g. terminal.Virtual.
type Feeder interface {
	Feed(data string)
}

// Replay feeds the wire encoding of each event to f in order.
func Replay(events []Event, f Feeder) {
	for _, e := range events {
		if b := e.Encode(); len(b) > 0 {
			f.Feed(string(b))
		}
	}
}
