package entities

// Dictionary is a lookup row shared by the three reference tables:
// equipment types, equipment statuses and intervention outcomes.
type Dictionary struct {
	ID          uint64
	Description string
}

// Fixed identities of the seeded statuses and outcomes. The status
// synchronization rule matches on these, so the seeder inserts them in
// exactly this order.
const (
	StatusWorking     uint64 = 1
	StatusUnderRepair uint64 = 2
	StatusObsolete    uint64 = 3

	OutcomeResolved   uint64 = 1
	OutcomeMonitoring uint64 = 2
	OutcomePending    uint64 = 3
)
