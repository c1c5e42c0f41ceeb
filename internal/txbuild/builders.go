package txbuild

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/contracts"
	"clubfund/internal/convert"
)

// Builder produces unsigned call descriptions from form state. Each
// builder is a pure function of its inputs: an empty result means the form
// is not ready to submit, exactly one call means it is. Builders never
// execute anything.
type Builder struct {
	registry      common.Address
	fundingPool   common.Address
	expenseLedger common.Address

	registryABI abi.ABI
	orgABI      abi.ABI
	poolABI     abi.ABI
	ledgerABI   abi.ABI
}

// NewBuilder parses the contract ABIs and binds the deployed addresses.
func NewBuilder(cfg contracts.Config) (*Builder, error) {
	registryABI, err := contracts.RegistryABI()
	if err != nil {
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}
	orgABI, err := contracts.OrganizationABI()
	if err != nil {
		return nil, fmt.Errorf("parse organization abi: %w", err)
	}
	poolABI, err := contracts.FundingPoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse funding pool abi: %w", err)
	}
	ledgerABI, err := contracts.ExpenseLedgerABI()
	if err != nil {
		return nil, fmt.Errorf("parse expense ledger abi: %w", err)
	}

	return &Builder{
		registry:      cfg.Registry,
		fundingPool:   cfg.FundingPool,
		expenseLedger: cfg.ExpenseLedger,
		registryABI:   registryABI,
		orgABI:        orgABI,
		poolABI:       poolABI,
		ledgerABI:     ledgerABI,
	}, nil
}

// CreateOrganization registers a new organization.
func (b *Builder) CreateOrganization(name, description, mission string) ([]Call, error) {
	if blank(name) || blank(description) || blank(mission) {
		return nil, nil
	}
	return b.pack(b.registry, b.registryABI, "createOrganization", nil, name, description, mission)
}

// AddMember adds a member to an organization instance.
func (b *Builder) AddMember(org common.Address, member string) ([]Call, error) {
	address, ready, err := parseAddress(member)
	if err != nil || !ready {
		return nil, err
	}
	return b.pack(org, b.orgABI, "addMember", nil, address)
}

// AddTreasurer flags an organization member as a treasurer.
func (b *Builder) AddTreasurer(org common.Address, treasurer string) ([]Call, error) {
	address, ready, err := parseAddress(treasurer)
	if err != nil || !ready {
		return nil, err
	}
	return b.pack(org, b.orgABI, "addTreasurer", nil, address)
}

// BudgetItem is one itemized budget line of a campaign form. Amount is a
// decimal dollar string.
type BudgetItem struct {
	Label  string
	Amount string
}

// CampaignForm is the create-campaign form state.
type CampaignForm struct {
	Name        string
	Description string
	Goal        string // decimal dollars
	Deadline    uint64 // unix seconds, 0 means no deadline
	FundingType uint8
	Items       []BudgetItem
}

// CreateCampaign opens a campaign in the funding pool. The goal and every
// budget amount are floored to minor units.
func (b *Builder) CreateCampaign(form CampaignForm) ([]Call, error) {
	if blank(form.Name) || blank(form.Description) || blank(form.Goal) {
		return nil, nil
	}
	if form.FundingType > 2 {
		return nil, fmt.Errorf("%w: funding type %d", ErrInvalidInput, form.FundingType)
	}

	goal, err := convert.MinorUnitsFromDecimal(form.Goal)
	if err != nil {
		return nil, fmt.Errorf("%w: goal: %w", ErrInvalidInput, err)
	}
	if goal.Sign() == 0 {
		return nil, fmt.Errorf("%w: goal must be positive", ErrInvalidInput)
	}

	labels := make([]string, 0, len(form.Items))
	amounts := make([]*big.Int, 0, len(form.Items))
	for _, item := range form.Items {
		if blank(item.Label) && blank(item.Amount) {
			continue
		}
		if blank(item.Label) || blank(item.Amount) {
			return nil, fmt.Errorf("%w: incomplete budget item", ErrInvalidInput)
		}
		amount, err := convert.MinorUnitsFromDecimal(item.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: budget item %q: %w", ErrInvalidInput, item.Label, err)
		}
		labels = append(labels, strings.TrimSpace(item.Label))
		amounts = append(amounts, amount)
	}

	return b.pack(b.fundingPool, b.poolABI, "createCampaign", nil,
		form.Name,
		form.Description,
		goal,
		new(big.Int).SetUint64(form.Deadline),
		form.FundingType,
		labels,
		amounts,
	)
}

// Contribute funds a campaign. The decimal amount is floored to base
// units so the transaction never carries more value than the user entered.
func (b *Builder) Contribute(campaignID uint64, amount string) ([]Call, error) {
	if blank(amount) {
		return nil, nil
	}
	value, err := convert.WeiFromDecimal(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %w", ErrInvalidInput, err)
	}
	if value.Sign() == 0 {
		return nil, nil
	}
	return b.pack(b.fundingPool, b.poolABI, "contribute", value, new(big.Int).SetUint64(campaignID))
}

// ExpenseForm is the submit-expense form state. CampaignID is the raw form
// value; an empty string means no campaign is selected yet.
type ExpenseForm struct {
	Description       string
	Amount            string // decimal dollars
	ReceiptURI        string
	CampaignID        string
	RequiredApprovals uint64
}

// SubmitExpense files an expense against a campaign.
func (b *Builder) SubmitExpense(form ExpenseForm) ([]Call, error) {
	if blank(form.Description) || blank(form.Amount) || blank(form.CampaignID) {
		return nil, nil
	}
	if form.RequiredApprovals == 0 {
		return nil, fmt.Errorf("%w: required approvals must be at least 1", ErrInvalidInput)
	}

	amount, err := convert.MinorUnitsFromDecimal(form.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %w", ErrInvalidInput, err)
	}
	if amount.Sign() == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	campaignID, err := strconv.ParseUint(strings.TrimSpace(form.CampaignID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: campaign id %q", ErrInvalidInput, form.CampaignID)
	}

	return b.pack(b.expenseLedger, b.ledgerABI, "submitExpense", nil,
		form.Description,
		amount,
		strings.TrimSpace(form.ReceiptURI),
		new(big.Int).SetUint64(campaignID),
		new(big.Int).SetUint64(form.RequiredApprovals),
	)
}

// ApproveExpense records one approval.
func (b *Builder) ApproveExpense(id uint64) ([]Call, error) {
	return b.pack(b.expenseLedger, b.ledgerABI, "approveExpense", nil, new(big.Int).SetUint64(id))
}

// RejectExpense rejects a pending expense.
func (b *Builder) RejectExpense(id uint64) ([]Call, error) {
	return b.pack(b.expenseLedger, b.ledgerABI, "rejectExpense", nil, new(big.Int).SetUint64(id))
}

// ReimburseExpense pays an approved expense out to the recipient. The
// decimal amount is floored to base units.
func (b *Builder) ReimburseExpense(id uint64, recipient, amount string) ([]Call, error) {
	address, ready, err := parseAddress(recipient)
	if err != nil || !ready {
		return nil, err
	}
	if blank(amount) {
		return nil, nil
	}
	value, err := convert.WeiFromDecimal(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %w", ErrInvalidInput, err)
	}
	if value.Sign() == 0 {
		return nil, nil
	}
	return b.pack(b.expenseLedger, b.ledgerABI, "reimburseExpense", value, new(big.Int).SetUint64(id), address)
}

func (b *Builder) pack(to common.Address, parsed abi.ABI, method string, value *big.Int, args ...interface{}) ([]Call, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrInvalidInput, method, err)
	}
	return []Call{{To: to, Data: data, Value: value}}, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseAddress distinguishes "not filled in yet" (ready=false, no error)
// from a malformed address (ErrInvalidInput).
func parseAddress(input string) (common.Address, bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Address{}, false, nil
	}
	if !common.IsHexAddress(input) {
		return common.Address{}, false, fmt.Errorf("%w: %w: %q", ErrInvalidInput, convert.ErrInvalidAddress, input)
	}
	return common.HexToAddress(input), true, nil
}
