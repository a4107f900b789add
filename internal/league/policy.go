package league

// Policy holds the validation rules that differ between leagues.
type Policy struct {
	// EnforceTieBreak rejects sets won 7 games unless the other side had 5 or 6.
	EnforceTieBreak bool
	// RequireThirdSet rejects a split 1-1 match without a deciding set.
	RequireThirdSet bool
	// ForbidThirdSetAfterSweep rejects a third set when one pair won the first two.
	ForbidThirdSetAfterSweep bool
	// MaxGames caps the games a side can have in a set. Zero disables the cap.
	MaxGames int
}

// DefaultPolicy returns the rules used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		EnforceTieBreak:          false,
		RequireThirdSet:          true,
		ForbidThirdSetAfterSweep: true,
		MaxGames:                 7,
	}
}
