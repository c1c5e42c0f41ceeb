package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"clubfund/internal/convert"
	"clubfund/internal/model"
)

// ErrAggregation marks a failed aggregation operation: the initial count
// read failed, or a detail view's dependency failed. Per-item failures
// inside a listing never surface as this error; they degrade the listing.
var ErrAggregation = errors.New("aggregation failed")

const defaultWorkers = 4

// Options tune display conversion and read concurrency.
type Options struct {
	// FiatRate is the fixed native-token price used for display only.
	// A documented approximation, not an oracle feed.
	FiatRate int64

	IPFSGateway string

	// Workers bounds concurrent per-index builds within one listing.
	// 1 forces the reads fully sequential.
	Workers int
}

// Aggregator turns raw ledger reads into display-ready view records. Each
// invocation owns its accumulator and re-reads everything; there is no
// cache, so results always reflect current on-chain state.
type Aggregator struct {
	reader Reader
	opts   Options
	logger *zap.Logger
}

func New(reader Reader, opts Options, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FiatRate <= 0 {
		opts.FiatRate = convert.DefaultEthUsdRate
	}
	if opts.IPFSGateway == "" {
		opts.IPFSGateway = convert.DefaultIPFSGateway
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Aggregator{reader: reader, opts: opts, logger: logger}
}

// Organizations lists registered organizations in ledger order.
func (a *Aggregator) Organizations(ctx context.Context, page Page) (model.OrganizationListing, error) {
	total, err := a.reader.OrganizationCount(ctx)
	if err != nil {
		return model.OrganizationListing{}, aggErr("organization count", err)
	}

	w := pageWindow(total, page)
	records := collect(ctx, a.logger, "organization", a.opts.Workers, w, a.buildOrganization)

	return model.OrganizationListing{
		Organizations: records,
		Total:         total,
		HasMore:       w.hasMore,
	}, nil
}

// Campaigns lists funding campaigns in ledger order.
func (a *Aggregator) Campaigns(ctx context.Context, page Page) (model.CampaignListing, error) {
	total, err := a.reader.CampaignCount(ctx)
	if err != nil {
		return model.CampaignListing{}, aggErr("campaign count", err)
	}

	w := pageWindow(total, page)
	records := collect(ctx, a.logger, "campaign", a.opts.Workers, w, a.buildCampaign)

	return model.CampaignListing{
		Campaigns: records,
		Total:     total,
		HasMore:   w.hasMore,
	}, nil
}

// Expenses lists submitted expenses in ledger order, each flattened with
// its campaign's name and organization label.
func (a *Aggregator) Expenses(ctx context.Context, page Page) (model.ExpenseListing, error) {
	total, err := a.reader.ExpenseCount(ctx)
	if err != nil {
		return model.ExpenseListing{}, aggErr("expense count", err)
	}

	w := pageWindow(total, page)
	records := collect(ctx, a.logger, "expense", a.opts.Workers, w, a.buildExpense)

	return model.ExpenseListing{
		Expenses: records,
		Total:    total,
		HasMore:  w.hasMore,
	}, nil
}

// OrganizationDetail resolves one organization with its member roster and
// campaigns. Primary and member resolution are all-or-nothing; the embedded
// campaign list keeps the listing skip policy.
func (a *Aggregator) OrganizationDetail(ctx context.Context, address common.Address) (model.OrganizationDetailView, error) {
	org, err := a.reader.OrganizationByAddress(ctx, address)
	if err != nil {
		return model.OrganizationDetailView{}, aggErr("organization", err)
	}

	memberCount, err := a.reader.MemberCount(ctx, address)
	if err != nil {
		return model.OrganizationDetailView{}, aggErr("member count", err)
	}

	orgView, err := a.organizationView(org, memberCount)
	if err != nil {
		return model.OrganizationDetailView{}, aggErr("organization", err)
	}

	members := make([]model.MemberView, 0, memberCount)
	for i := uint64(0); i < memberCount; i++ {
		member, err := a.reader.MemberByIndex(ctx, address, i)
		if err != nil {
			return model.OrganizationDetailView{}, aggErr("member", err)
		}
		treasurer, err := a.reader.IsTreasurer(ctx, address, member)
		if err != nil {
			return model.OrganizationDetailView{}, aggErr("treasurer flag", err)
		}
		label, err := convert.AddressLabel(member.Hex())
		if err != nil {
			return model.OrganizationDetailView{}, aggErr("member label", err)
		}

		role := model.RoleMember
		switch {
		case member.Hex() == org.Admin:
			role = model.RoleAdmin
		case treasurer:
			role = model.RoleTreasurer
		}

		members = append(members, model.MemberView{
			Address: member.Hex(),
			Label:   label,
			Role:    role,
		})
	}

	campaigns, err := a.organizationCampaigns(ctx, address)
	if err != nil {
		return model.OrganizationDetailView{}, err
	}

	return model.OrganizationDetailView{
		OrganizationView: orgView,
		Members:          members,
		Campaigns:        campaigns,
	}, nil
}

// CampaignDetail resolves one campaign with its itemized budget.
// All-or-nothing: any failed read fails the operation.
func (a *Aggregator) CampaignDetail(ctx context.Context, id uint64) (model.CampaignDetailView, error) {
	details, err := a.reader.CampaignDetails(ctx, id)
	if err != nil {
		return model.CampaignDetailView{}, aggErr("campaign", err)
	}
	raw, err := a.reader.CampaignWithOrganization(ctx, id)
	if err != nil {
		return model.CampaignDetailView{}, aggErr("campaign organization", err)
	}
	view, err := a.campaignView(details, raw)
	if err != nil {
		return model.CampaignDetailView{}, aggErr("campaign", err)
	}

	items, err := a.reader.ExpenseItems(ctx, id)
	if err != nil {
		return model.CampaignDetailView{}, aggErr("expense items", err)
	}
	itemViews := make([]model.ExpenseItemView, 0, len(items))
	for _, item := range items {
		itemViews = append(itemViews, model.ExpenseItemView{
			Label:  item.Label,
			Amount: convert.Dollars(item.Amount),
		})
	}

	return model.CampaignDetailView{
		CampaignView: view,
		Items:        itemViews,
	}, nil
}

// ExpenseDetail resolves one expense with its parent campaign and
// organization, plus the approval history from the ledger's event logs.
// Parent resolution is all-or-nothing; a failed history query degrades to
// an empty history rather than hiding an otherwise complete record.
func (a *Aggregator) ExpenseDetail(ctx context.Context, id uint64) (model.ExpenseDetailView, error) {
	view, err := a.expenseView(ctx, id)
	if err != nil {
		return model.ExpenseDetailView{}, aggErr("expense", err)
	}

	approvals := []model.ApprovalView{}
	history, err := a.reader.ApprovalHistory(ctx, id)
	if err != nil {
		a.logger.Warn("approval history unavailable", zap.Uint64("expense_id", id), zap.Error(err))
	} else {
		for _, approval := range history {
			label, err := convert.AddressLabel(approval.Approver)
			if err != nil {
				a.logger.Warn("skip approval", zap.Uint64("expense_id", id), zap.Error(err))
				continue
			}
			approvals = append(approvals, model.ApprovalView{
				Approver:        label,
				ApproverAddress: approval.Approver,
				Date:            convert.Date(approval.Timestamp),
				TxHash:          approval.TxHash,
			})
		}
	}

	return model.ExpenseDetailView{
		ExpenseView: view,
		Approvals:   approvals,
	}, nil
}

// MembershipStatus reports how an account relates to an organization; the
// caller uses it to gate action affordances.
func (a *Aggregator) MembershipStatus(ctx context.Context, org common.Address, account common.Address) (model.MembershipStatus, error) {
	record, err := a.reader.OrganizationByAddress(ctx, org)
	if err != nil {
		return model.MembershipStatus{}, aggErr("organization", err)
	}
	isMember, err := a.reader.IsMember(ctx, org, account)
	if err != nil {
		return model.MembershipStatus{}, aggErr("membership", err)
	}
	isTreasurer, err := a.reader.IsTreasurer(ctx, org, account)
	if err != nil {
		return model.MembershipStatus{}, aggErr("treasurer flag", err)
	}

	return model.MembershipStatus{
		IsAdmin:     account.Hex() == record.Admin,
		IsMember:    isMember,
		IsTreasurer: isTreasurer,
	}, nil
}

func (a *Aggregator) buildOrganization(ctx context.Context, index uint64) (model.OrganizationView, error) {
	address, err := a.reader.OrganizationAddressByIndex(ctx, index)
	if err != nil {
		return model.OrganizationView{}, err
	}
	org, err := a.reader.OrganizationByAddress(ctx, address)
	if err != nil {
		return model.OrganizationView{}, err
	}
	memberCount, err := a.reader.MemberCount(ctx, address)
	if err != nil {
		return model.OrganizationView{}, err
	}
	return a.organizationView(org, memberCount)
}

func (a *Aggregator) buildCampaign(ctx context.Context, id uint64) (model.CampaignView, error) {
	details, err := a.reader.CampaignDetails(ctx, id)
	if err != nil {
		return model.CampaignView{}, err
	}
	// The owning organization is addressed by the campaigns(id) tuple,
	// never looked up by name.
	raw, err := a.reader.CampaignWithOrganization(ctx, id)
	if err != nil {
		return model.CampaignView{}, err
	}
	return a.campaignView(details, raw)
}

func (a *Aggregator) buildExpense(ctx context.Context, id uint64) (model.ExpenseView, error) {
	return a.expenseView(ctx, id)
}

func (a *Aggregator) organizationView(org model.Organization, memberCount uint64) (model.OrganizationView, error) {
	adminLabel, err := convert.AddressLabel(org.Admin)
	if err != nil {
		return model.OrganizationView{}, err
	}
	return model.OrganizationView{
		Address:     org.Address,
		Name:        org.Name,
		Description: org.Description,
		Mission:     org.Mission,
		Created:     convert.Date(org.CreationDate),
		Admin:       org.Admin,
		AdminLabel:  adminLabel,
		MemberCount: memberCount,
	}, nil
}

func (a *Aggregator) campaignView(details, raw model.Campaign) (model.CampaignView, error) {
	orgLabel, err := convert.AddressLabel(raw.Organization)
	if err != nil {
		return model.CampaignView{}, err
	}
	return model.CampaignView{
		ID:                  details.ID,
		Name:                details.Name,
		Description:         details.Description,
		Goal:                convert.Dollars(details.Goal),
		Collected:           convert.FiatFromWei(details.Collected, a.opts.FiatRate),
		Deadline:            convert.Date(details.Deadline),
		FundingType:         convert.FundingTypeLabel(details.FundingType),
		Status:              convert.CampaignStatusLabel(details.Status),
		Organization:        orgLabel,
		OrganizationAddress: raw.Organization,
	}, nil
}

func (a *Aggregator) expenseView(ctx context.Context, id uint64) (model.ExpenseView, error) {
	expense, err := a.reader.ExpenseDetails(ctx, id)
	if err != nil {
		return model.ExpenseView{}, err
	}
	campaign, err := a.reader.CampaignDetails(ctx, expense.CampaignID)
	if err != nil {
		return model.ExpenseView{}, err
	}
	raw, err := a.reader.CampaignWithOrganization(ctx, expense.CampaignID)
	if err != nil {
		return model.ExpenseView{}, err
	}

	requesterLabel, err := convert.AddressLabel(expense.Requester)
	if err != nil {
		return model.ExpenseView{}, err
	}
	orgLabel, err := convert.AddressLabel(raw.Organization)
	if err != nil {
		return model.ExpenseView{}, err
	}

	return model.ExpenseView{
		ID:                expense.ID,
		Description:       expense.Description,
		Amount:            convert.Dollars(expense.Amount),
		ReceiptURL:        convert.ReceiptURL(expense.ReceiptURI, a.opts.IPFSGateway),
		Requester:         requesterLabel,
		RequesterAddress:  expense.Requester,
		CampaignID:        expense.CampaignID,
		CampaignName:      campaign.Name,
		Organization:      orgLabel,
		Status:            convert.ExpenseStatusLabel(expense.Status),
		Submitted:         convert.Date(expense.SubmissionDate),
		RequiredApprovals: expense.RequiredApprovals,
		ApprovalCount:     expense.ApprovalCount,
	}, nil
}

// organizationCampaigns filters the campaign ledger down to one
// organization. Per-campaign failures follow the listing skip policy.
func (a *Aggregator) organizationCampaigns(ctx context.Context, org common.Address) ([]model.CampaignView, error) {
	total, err := a.reader.CampaignCount(ctx)
	if err != nil {
		return nil, aggErr("campaign count", err)
	}

	w := pageWindow(total, Page{})
	views := collect(ctx, a.logger, "organization campaign", a.opts.Workers, w, func(ctx context.Context, id uint64) (model.CampaignView, error) {
		raw, err := a.reader.CampaignWithOrganization(ctx, id)
		if err != nil {
			return model.CampaignView{}, err
		}
		if raw.Organization != org.Hex() {
			return model.CampaignView{}, errSkipped
		}
		details, err := a.reader.CampaignDetails(ctx, id)
		if err != nil {
			return model.CampaignView{}, err
		}
		return a.campaignView(details, raw)
	})

	return views, nil
}

// errSkipped drops a record from a filtered sub-listing; it is expected
// and logged at the same level as any other skip.
var errSkipped = errors.New("filtered out")

func aggErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAggregation, op, err)
}
