package domain

import "fmt"

// Outcome is the game-level state. Playing may move to Won or Lost once;
// both are terminal.
type Outcome uint8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Over reports whether o is terminal.
func (o Outcome) Over() bool { return o != Playing }

func (o Outcome) transition(to Outcome) Outcome {
	if o != Playing || to == Playing {
		panic(fmt.Sprintf("domain: invalid outcome transition %s -> %s", o, to))
	}
	return to
}
