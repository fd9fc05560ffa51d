package models

// Tier is the coarse grade shown to the player for a guess.
type Tier string

const (
	TierCorrect Tier = "correct"
	TierClose   Tier = "close"
	TierNeutral Tier = "neutral"
)

// MatchKind records which evaluation rule produced a result.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSynonym   MatchKind = "synonym"
	MatchCategory  MatchKind = "category"
	MatchSubstring MatchKind = "substring"
	MatchFuzzy     MatchKind = "fuzzy"
	MatchNone      MatchKind = "none"
)

// GuessResult is the immutable feedback for a single guess.
type GuessResult struct {
	Guess       string    `json:"guess"`
	Tier        Tier      `json:"tier"`
	MatchKind   MatchKind `json:"match_kind"`
	Similarity  float64   `json:"similarity"`
	Explanation string    `json:"explanation"`
}

// Tone maps a tier onto the status colour a client shows with the message.
func (t Tier) Tone() string {
	switch t {
	case TierCorrect:
		return "success"
	case TierClose:
		return "info"
	default:
		return "warning"
	}
}
