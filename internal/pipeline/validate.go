package pipeline

// Outcome classifies a finished run by how much of the requested content was
// produced.
type Outcome string

const (
	// OutcomeComplete means every requested slot is populated and no step
	// recorded an error.
	OutcomeComplete Outcome = "complete"

	// OutcomePartial means at least one requested slot is populated but the
	// run also has failures or gaps.
	OutcomePartial Outcome = "partial"

	// OutcomeEmpty means none of the requested slots were populated. A run
	// that requested nothing is empty regardless of recorded errors.
	OutcomeEmpty Outcome = "empty"
)

// Classify grades a finished run. It only inspects the state and never
// mutates it. The empty check wins over the error check, so a run with
// failures and no output is empty rather than partial.
func Classify(state *State) Outcome {
	requested := state.Manifest.Types()
	populated := 0
	for _, ct := range requested {
		if state.HasOutput(ct) {
			populated++
		}
	}
	switch {
	case populated == 0:
		return OutcomeEmpty
	case populated == len(requested) && len(state.Errors) == 0:
		return OutcomeComplete
	default:
		return OutcomePartial
	}
}
