package domain

// Reason strings surfaced on unsuccessful navigation results. Agents branch
// on these verbatim, so they are fixed.
const (
	ReasonSourceNotFound = "Source hex not found"
	ReasonEdgeNotFound   = "Edge not found"
	ReasonGuardUnmet     = "Edge condition not met"
	ReasonHexNotFound    = "Hex not found"
)

// QueryMatch pairs a hex with its score and the entry hints that earned it.
type QueryMatch struct {
	Hex          *Hex     `json:"hex"`
	Score        float64  `json:"score"`
	MatchedHints []string `json:"matchedHints"`
}

// TraversalResult reports one attempted edge crossing. Failures are ordinary
// values: callers branch on Success, nothing is raised.
type TraversalResult struct {
	Success bool `json:"success"`

	// Destination carries the edge's target verbatim, including any
	// external prefix. Populated on success and on guard failure.
	Destination string `json:"destination"`

	// Payload is the (possibly transformed) cargo to carry onward.
	Payload any `json:"payload,omitempty"`

	// External marks a crossing that leaves the comb.
	External bool `json:"external,omitempty"`

	Error string `json:"error,omitempty"`
}

// EnterResult reports landing on a hex: the hex itself plus the outbound
// edges whose guards pass for the entering context.
type EnterResult struct {
	Success bool   `json:"success"`
	Hex     *Hex   `json:"hex,omitempty"`
	Exits   []Edge `json:"exits"`
	Error   string `json:"error,omitempty"`
}
