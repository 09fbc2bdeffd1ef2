package domain

// NotificationKind names a notification template. Rendering and delivery
// belong to the notification collaborator; the core only emits intents.
type NotificationKind string

const (
	NotifyLoanRequestedBorrower  NotificationKind = "loan_requested_borrower"
	NotifyLoanRequestedTreasurer NotificationKind = "loan_requested_treasurer"
	NotifyLoanDecision           NotificationKind = "loan_decision"
	NotifyLoanPenalty            NotificationKind = "loan_penalty"
)

// NotificationIntent is a fire-and-forget request to notify a member.
// Delivery failure must never roll back the ledger mutation that produced it.
type NotificationIntent struct {
	RecipientID string           `json:"recipientID"`
	Kind        NotificationKind `json:"kind"`
	Data        map[string]any   `json:"data,omitempty"`
}
