package valueobject

import "fmt"

// Strategy names the scorer that produced a report.
type Strategy struct {
	value string
}

var (
	StrategyRules  = Strategy{value: "rules"}
	StrategyRemote = Strategy{value: "remote"}
)

// StrategyFromString reconstructs a Strategy from its string representation.
func StrategyFromString(s string) (Strategy, error) {
	switch s {
	case "rules":
		return StrategyRules, nil
	case "remote":
		return StrategyRemote, nil
	default:
		return Strategy{}, fmt.Errorf("invalid scoring strategy: %s", s)
	}
}

func (s Strategy) String() string           { return s.value }
func (s Strategy) IsZero() bool             { return s.value == "" }
func (s Strategy) Equal(other Strategy) bool { return s.value == other.value }
