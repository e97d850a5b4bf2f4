package enums

import "fmt"

// AllocationIssueKind classifies why a line item cannot advance past the
// scheduling step.
type AllocationIssueKind string

const (
	// AllocationIssueUnallocated means slot quantities sum to less than the
	// line item's total.
	AllocationIssueUnallocated AllocationIssueKind = "unallocated_quantity"
	// AllocationIssueOverAllocated means slot quantities sum to more than the
	// line item's total.
	AllocationIssueOverAllocated AllocationIssueKind = "over_allocated_quantity"
	// AllocationIssueIncompleteFields means one or more slots are missing a
	// required field (date, time or vehicle, depending on the flow).
	AllocationIssueIncompleteFields AllocationIssueKind = "incomplete_slot_fields"
	// AllocationIssueDegenerateTotal means the line item's total quantity is
	// zero, which makes the allocation meaningless.
	AllocationIssueDegenerateTotal AllocationIssueKind = "degenerate_total"
)

var validAllocationIssueKinds = []AllocationIssueKind{
	AllocationIssueUnallocated,
	AllocationIssueOverAllocated,
	AllocationIssueIncompleteFields,
	AllocationIssueDegenerateTotal,
}

// String implements fmt.Stringer.
func (k AllocationIssueKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known AllocationIssueKind.
func (k AllocationIssueKind) IsValid() bool {
	for _, candidate := range validAllocationIssueKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseAllocationIssueKind converts raw input into an AllocationIssueKind.
func ParseAllocationIssueKind(value string) (AllocationIssueKind, error) {
	for _, candidate := range validAllocationIssueKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid allocation issue kind %q", value)
}
