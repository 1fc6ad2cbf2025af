package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trackhub/internal/entities"
)

func TestStatusForOutcome(t *testing.T) {
	testCases := []struct {
		name       string
		outcomeID  uint64
		wantStatus uint64
		wantOK     bool
	}{
		{"resolved maps to working", entities.OutcomeResolved, entities.StatusWorking, true},
		{"pending maps to under repair", entities.OutcomePending, entities.StatusUnderRepair, true},
		{"monitoring maps to under repair", entities.OutcomeMonitoring, entities.StatusUnderRepair, true},
		{"unknown outcome maps to nothing", 99, 0, false},
		{"zero outcome maps to nothing", 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, ok := StatusForOutcome(tc.outcomeID)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestStatusForOutcomeIsIdempotent(t *testing.T) {
	first, ok1 := StatusForOutcome(entities.OutcomeResolved)
	second, ok2 := StatusForOutcome(entities.OutcomeResolved)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}
