package aggregate

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/model"
)

// Reader is the set of contract reads the aggregator depends on. The
// production implementation is contracts.Gateway; tests substitute a fake
// ledger with injectable failures.
type Reader interface {
	OrganizationCount(ctx context.Context) (uint64, error)
	OrganizationAddressByIndex(ctx context.Context, index uint64) (common.Address, error)
	OrganizationByAddress(ctx context.Context, address common.Address) (model.Organization, error)
	MemberCount(ctx context.Context, org common.Address) (uint64, error)
	MemberByIndex(ctx context.Context, org common.Address, index uint64) (common.Address, error)
	IsMember(ctx context.Context, org, account common.Address) (bool, error)
	IsTreasurer(ctx context.Context, org, account common.Address) (bool, error)

	CampaignCount(ctx context.Context) (uint64, error)
	CampaignDetails(ctx context.Context, id uint64) (model.Campaign, error)
	CampaignWithOrganization(ctx context.Context, id uint64) (model.Campaign, error)
	ExpenseItems(ctx context.Context, id uint64) ([]model.ExpenseItem, error)

	ExpenseCount(ctx context.Context) (uint64, error)
	ExpenseDetails(ctx context.Context, id uint64) (model.Expense, error)
	HasApproved(ctx context.Context, id uint64, approver common.Address) (bool, error)
	ApprovalHistory(ctx context.Context, id uint64) ([]model.Approval, error)
}
