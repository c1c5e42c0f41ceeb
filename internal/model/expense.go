package model

import "math/big"

// Expense statuses as stored on chain (ordinals).
const (
	ExpensePending    uint8 = 0
	ExpenseApproved   uint8 = 1
	ExpenseRejected   uint8 = 2
	ExpenseReimbursed uint8 = 3
)

// Expense is the expense-ledger tuple for one expense. Amount is in minor
// units.
type Expense struct {
	ID                uint64   `json:"id"`
	Description       string   `json:"description"`
	Amount            *big.Int `json:"amount"`
	ReceiptURI        string   `json:"receipt_uri"`
	Requester         string   `json:"requester"`
	CampaignID        uint64   `json:"campaign_id"`
	Status            uint8    `json:"status"`
	SubmissionDate    uint64   `json:"submission_date"`
	RequiredApprovals uint64   `json:"required_approvals"`
	ApprovalCount     uint64   `json:"approval_count"`
}

// Approval is one ExpenseApproved event decoded from the ledger's logs.
type Approval struct {
	Approver    string `json:"approver"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	Timestamp   uint64 `json:"timestamp"`
}
