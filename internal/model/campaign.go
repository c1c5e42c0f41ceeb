package model

import "math/big"

// Campaign funding types and statuses as stored on chain (ordinals).
const (
	FundingTypeGeneral uint8 = 0
	FundingTypeEvent   uint8 = 1
	FundingTypeTravel  uint8 = 2

	CampaignActive    uint8 = 0
	CampaignCompleted uint8 = 1
	CampaignCancelled uint8 = 2
)

// Campaign is the funding-pool tuple for one campaign. Goal is in minor
// currency units (cents), Collected in native token base units (wei).
// Organization is only populated when the tuple came from the campaigns(id)
// accessor; getCampaignDetails(id) omits it.
type Campaign struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Goal         *big.Int `json:"goal"`
	Collected    *big.Int `json:"collected"`
	Deadline     uint64   `json:"deadline"`
	FundingType  uint8    `json:"funding_type"`
	Status       uint8    `json:"status"`
	Organization string   `json:"organization,omitempty"`
}

// ExpenseItem is one entry of a campaign's itemized budget. Amount is in
// minor units.
type ExpenseItem struct {
	Label  string   `json:"label"`
	Amount *big.Int `json:"amount"`
}
