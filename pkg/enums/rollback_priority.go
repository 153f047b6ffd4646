package enums

// RollbackPriority buckets rollback opportunities by per-line savings.
type RollbackPriority string

const (
	RollbackPriorityHigh   RollbackPriority = "high"
	RollbackPriorityMedium RollbackPriority = "medium"
	RollbackPriorityLow    RollbackPriority = "low"
)

// String implements fmt.Stringer.
func (r RollbackPriority) String() string {
	return string(r)
}
