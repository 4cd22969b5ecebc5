package valueobject

// Badge is the compact indicator a client paints next to a posting.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

var (
	BadgeDanger  = Badge{Text: "!", Color: "#F44336"}
	BadgeWarning = Badge{Text: "?", Color: "#FF9800"}
	BadgeOK      = Badge{Text: "✓", Color: "#4CAF50"}
)

// BadgeFromScore picks the badge for score. Its cut-offs are inclusive and
// differ from the verdict thresholds.
func BadgeFromScore(score int) Badge {
	switch {
	case score <= 40:
		return BadgeDanger
	case score <= 70:
		return BadgeWarning
	default:
		return BadgeOK
	}
}
