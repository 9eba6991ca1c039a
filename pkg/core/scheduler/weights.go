package scheduler

// Scoring weights for candidate selection. The availability base makes soft
// preference the dominant signal; keyholder and group shaping sit above it so
// a required keyholder beats any availability advantage, and the penalties
// push ineligible candidates below the score floor without making them
// impossible to enumerate.
const (
	// Availability base scores
	ScoreFixed     = 100.0
	ScorePreferred = 50.0
	ScoreAvailable = 10.0

	// Keyholder need shaping
	WeightKeyholderMatch   = 150.0
	WeightKeyholderMissing = -1000.0

	// Group restriction shaping
	WeightGroupMatch    = 75.0
	WeightGroupMismatch = -750.0
	WeightGroupUnknown  = -100.0

	// WeightDesirability multiplies the shift type's base desirability into
	// a penalty so unpleasant shifts spread across the pool.
	WeightDesirability = 5.0

	// History adjustment: each shift of the same category already assigned
	// this run, and each shift overall, nudges the score down.
	WeightHistorySameType = 2.0
	WeightHistoryRunTotal = 1.0

	// Preference adjustment for explicit preferred/avoid lists.
	WeightPreferredDay  = 15.0
	WeightPreferredType = 15.0
	WeightAvoidDay      = 25.0
	WeightAvoidType     = 25.0

	// WeightOverstaffed penalizes each other interval the candidate shift
	// covers that is already fully staffed.
	WeightOverstaffed = -50.0
)
