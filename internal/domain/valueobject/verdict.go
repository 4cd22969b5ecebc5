package valueobject

import "fmt"

// Verdict is the coarse legitimacy bucket derived from a posting score.
type Verdict struct {
	value string
}

var (
	VerdictLegitimate       = Verdict{value: "LEGITIMATE"}
	VerdictCaution          = Verdict{value: "CAUTION"}
	VerdictFraudulent       = Verdict{value: "FRAUDULENT"}
	VerdictHighlyFraudulent = Verdict{value: "HIGHLY_FRAUDULENT"}
)

// VerdictFromScore maps a 0-100 legitimacy score onto a Verdict.
// Thresholds are checked from the top down.
func VerdictFromScore(score int) Verdict {
	switch {
	case score >= 80:
		return VerdictLegitimate
	case score >= 60:
		return VerdictCaution
	case score >= 40:
		return VerdictFraudulent
	default:
		return VerdictHighlyFraudulent
	}
}

// VerdictFromString reconstructs a Verdict from its string representation.
func VerdictFromString(s string) (Verdict, error) {
	switch s {
	case "LEGITIMATE":
		return VerdictLegitimate, nil
	case "CAUTION":
		return VerdictCaution, nil
	case "FRAUDULENT":
		return VerdictFraudulent, nil
	case "HIGHLY_FRAUDULENT":
		return VerdictHighlyFraudulent, nil
	default:
		return Verdict{}, fmt.Errorf("invalid verdict: %s", s)
	}
}

// Description is the sentence shown as the report summary.
func (v Verdict) Description() string {
	switch v.value {
	case "LEGITIMATE":
		return "appears legitimate, no major red flags."
	case "CAUTION":
		return "has concerning elements; review carefully."
	case "FRAUDULENT":
		return "shows multiple signs of potential fraud; proceed with extreme caution."
	case "HIGHLY_FRAUDULENT":
		return "numerous red flags; likely a scam, advise against applying."
	default:
		return ""
	}
}

// Label is the short banner text used by clients.
func (v Verdict) Label() string {
	switch v.value {
	case "LEGITIMATE":
		return "Likely Legitimate"
	case "CAUTION":
		return "Exercise Caution"
	case "FRAUDULENT":
		return "Potentially Fraudulent"
	case "HIGHLY_FRAUDULENT":
		return "Highly Likely Fraudulent"
	default:
		return ""
	}
}

// String returns the string representation.
func (v Verdict) String() string {
	return v.value
}

// IsZero returns true if the Verdict has not been set.
func (v Verdict) IsZero() bool {
	return v.value == ""
}

// Equal checks equality with another Verdict.
func (v Verdict) Equal(other Verdict) bool {
	return v.value == other.value
}
