package rules

import "trackhub/internal/entities"

// StatusForOutcome maps an intervention outcome to the equipment
// status it implies:
//
//	Resolved              -> Working
//	Pending or Monitoring -> Under Repair
//
// Any other outcome implies nothing; future outcome kinds must be
// mapped here explicitly, never guessed. The second return value
// reports whether the outcome carries a status at all.
func StatusForOutcome(outcomeID uint64) (uint64, bool) {
	switch outcomeID {
	case entities.OutcomeResolved:
		return entities.StatusWorking, true
	case entities.OutcomePending, entities.OutcomeMonitoring:
		return entities.StatusUnderRepair, true
	default:
		return 0, false
	}
}
