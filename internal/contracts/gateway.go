package contracts

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/chain"
	"clubfund/internal/model"
)

// ErrRead marks a single failed contract read: an RPC transport error or a
// revert (for example an out-of-range index). Reads are never retried here;
// the aggregator decides whether a failure skips an item or aborts.
var ErrRead = errors.New("contract read failed")

// Config locates the deployed contract suite.
type Config struct {
	Registry      common.Address
	FundingPool   common.Address
	ExpenseLedger common.Address

	// LogsFromBlock bounds event-log queries; use the suite's deployment
	// block to keep providers with capped ranges happy.
	LogsFromBlock uint64
}

// Gateway exposes typed read accessors over the registry, funding-pool, and
// expense-ledger contracts. Every accessor issues one independent eth_call;
// batches of reads are not atomic.
type Gateway struct {
	client *chain.Client
	cfg    Config

	registryABI abi.ABI
	orgABI      abi.ABI
	poolABI     abi.ABI
	ledgerABI   abi.ABI
}

// NewGateway parses the contract ABIs and binds them to the chain client.
func NewGateway(client *chain.Client, cfg Config) (*Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}

	registryABI, err := RegistryABI()
	if err != nil {
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}
	orgABI, err := OrganizationABI()
	if err != nil {
		return nil, fmt.Errorf("parse organization abi: %w", err)
	}
	poolABI, err := FundingPoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse funding pool abi: %w", err)
	}
	ledgerABI, err := ExpenseLedgerABI()
	if err != nil {
		return nil, fmt.Errorf("parse expense ledger abi: %w", err)
	}

	return &Gateway{
		client:      client,
		cfg:         cfg,
		registryABI: registryABI,
		orgABI:      orgABI,
		poolABI:     poolABI,
		ledgerABI:   ledgerABI,
	}, nil
}

// OrganizationCount returns the number of registered organizations.
func (g *Gateway) OrganizationCount(ctx context.Context) (uint64, error) {
	values, err := g.call(ctx, g.cfg.Registry, g.registryABI, "getOrganizationCount")
	if err != nil {
		return 0, err
	}
	count, err := asUint64(values[0])
	if err != nil {
		return 0, readErr("getOrganizationCount", err)
	}
	return count, nil
}

// OrganizationAddressByIndex returns the registry address at the index.
func (g *Gateway) OrganizationAddressByIndex(ctx context.Context, index uint64) (common.Address, error) {
	values, err := g.call(ctx, g.cfg.Registry, g.registryABI, "getOrganizationAddressByIndex", new(big.Int).SetUint64(index))
	if err != nil {
		return common.Address{}, err
	}
	address, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, readErr("getOrganizationAddressByIndex", err)
	}
	return address, nil
}

// OrganizationByAddress returns the registry tuple for an organization.
func (g *Gateway) OrganizationByAddress(ctx context.Context, address common.Address) (model.Organization, error) {
	values, err := g.call(ctx, g.cfg.Registry, g.registryABI, "organizations", address)
	if err != nil {
		return model.Organization{}, err
	}
	org, err := decodeOrganization(address, values)
	if err != nil {
		return model.Organization{}, readErr("organizations", err)
	}
	return org, nil
}

// MemberCount returns the member count of an organization instance.
func (g *Gateway) MemberCount(ctx context.Context, org common.Address) (uint64, error) {
	values, err := g.call(ctx, org, g.orgABI, "getMemberCount")
	if err != nil {
		return 0, err
	}
	count, err := asUint64(values[0])
	if err != nil {
		return 0, readErr("getMemberCount", err)
	}
	return count, nil
}

// MemberByIndex returns the member address at the index. Member order is
// insertion order; indices are only stable until a removal.
func (g *Gateway) MemberByIndex(ctx context.Context, org common.Address, index uint64) (common.Address, error) {
	values, err := g.call(ctx, org, g.orgABI, "memberArray", new(big.Int).SetUint64(index))
	if err != nil {
		return common.Address{}, err
	}
	member, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, readErr("memberArray", err)
	}
	return member, nil
}

// IsMember reports whether the account is a member of the organization.
func (g *Gateway) IsMember(ctx context.Context, org, account common.Address) (bool, error) {
	values, err := g.call(ctx, org, g.orgABI, "isMember", account)
	if err != nil {
		return false, err
	}
	ok, err := asBool(values[0])
	if err != nil {
		return false, readErr("isMember", err)
	}
	return ok, nil
}

// IsTreasurer reports whether the account is flagged as a treasurer.
func (g *Gateway) IsTreasurer(ctx context.Context, org, account common.Address) (bool, error) {
	values, err := g.call(ctx, org, g.orgABI, "isTreasurer", account)
	if err != nil {
		return false, err
	}
	ok, err := asBool(values[0])
	if err != nil {
		return false, readErr("isTreasurer", err)
	}
	return ok, nil
}

// Owner returns the organization instance's owner address.
func (g *Gateway) Owner(ctx context.Context, org common.Address) (common.Address, error) {
	values, err := g.call(ctx, org, g.orgABI, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, readErr("owner", err)
	}
	return owner, nil
}

// CampaignCount returns the number of campaigns in the funding pool.
func (g *Gateway) CampaignCount(ctx context.Context) (uint64, error) {
	values, err := g.call(ctx, g.cfg.FundingPool, g.poolABI, "campaignCount")
	if err != nil {
		return 0, err
	}
	count, err := asUint64(values[0])
	if err != nil {
		return 0, readErr("campaignCount", err)
	}
	return count, nil
}

// CampaignDetails returns the campaign tuple without the owning
// organization (the getCampaignDetails accessor omits it).
func (g *Gateway) CampaignDetails(ctx context.Context, id uint64) (model.Campaign, error) {
	values, err := g.call(ctx, g.cfg.FundingPool, g.poolABI, "getCampaignDetails", new(big.Int).SetUint64(id))
	if err != nil {
		return model.Campaign{}, err
	}
	campaign, err := decodeCampaign(id, values, false)
	if err != nil {
		return model.Campaign{}, readErr("getCampaignDetails", err)
	}
	return campaign, nil
}

// CampaignWithOrganization returns the raw campaigns(id) tuple, which
// carries the owning organization's address in its last position.
func (g *Gateway) CampaignWithOrganization(ctx context.Context, id uint64) (model.Campaign, error) {
	values, err := g.call(ctx, g.cfg.FundingPool, g.poolABI, "campaigns", new(big.Int).SetUint64(id))
	if err != nil {
		return model.Campaign{}, err
	}
	campaign, err := decodeCampaign(id, values, true)
	if err != nil {
		return model.Campaign{}, readErr("campaigns", err)
	}
	return campaign, nil
}

// ExpenseItems returns a campaign's itemized budget.
func (g *Gateway) ExpenseItems(ctx context.Context, id uint64) ([]model.ExpenseItem, error) {
	values, err := g.call(ctx, g.cfg.FundingPool, g.poolABI, "getExpenseItems", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	items, err := decodeExpenseItems(values)
	if err != nil {
		return nil, readErr("getExpenseItems", err)
	}
	return items, nil
}

// ExpenseCount returns the number of expenses in the ledger.
func (g *Gateway) ExpenseCount(ctx context.Context) (uint64, error) {
	values, err := g.call(ctx, g.cfg.ExpenseLedger, g.ledgerABI, "expenseCount")
	if err != nil {
		return 0, err
	}
	count, err := asUint64(values[0])
	if err != nil {
		return 0, readErr("expenseCount", err)
	}
	return count, nil
}

// ExpenseDetails returns the expense tuple by id.
func (g *Gateway) ExpenseDetails(ctx context.Context, id uint64) (model.Expense, error) {
	values, err := g.call(ctx, g.cfg.ExpenseLedger, g.ledgerABI, "getExpenseDetails", new(big.Int).SetUint64(id))
	if err != nil {
		return model.Expense{}, err
	}
	expense, err := decodeExpense(id, values)
	if err != nil {
		return model.Expense{}, readErr("getExpenseDetails", err)
	}
	return expense, nil
}

// HasApproved reports whether the approver already approved the expense.
func (g *Gateway) HasApproved(ctx context.Context, id uint64, approver common.Address) (bool, error) {
	values, err := g.call(ctx, g.cfg.ExpenseLedger, g.ledgerABI, "hasApproved", new(big.Int).SetUint64(id), approver)
	if err != nil {
		return false, err
	}
	ok, err := asBool(values[0])
	if err != nil {
		return false, readErr("hasApproved", err)
	}
	return ok, nil
}

// ApprovalHistory queries ExpenseApproved logs for one expense and dates
// each approval with its block timestamp. The ledger stores no approver
// list, so the event log is the only genuine source for this history.
func (g *Gateway) ApprovalHistory(ctx context.Context, id uint64) ([]model.Approval, error) {
	event := g.ledgerABI.Events["ExpenseApproved"]

	logs, err := g.client.FilterLogs(ctx, g.cfg.ExpenseLedger, []common.Hash{event.ID}, g.cfg.LogsFromBlock, 0)
	if err != nil {
		return nil, readErr("ExpenseApproved logs", err)
	}

	approvals := make([]model.Approval, 0, len(logs))
	for _, log := range logs {
		values, err := event.Inputs.Unpack(log.Data)
		if err != nil {
			return nil, readErr("ExpenseApproved logs", err)
		}
		if len(values) != 2 {
			return nil, readErr("ExpenseApproved logs", fmt.Errorf("want 2 values, got %d", len(values)))
		}
		expenseID, err := asUint64(values[0])
		if err != nil {
			return nil, readErr("ExpenseApproved logs", err)
		}
		if expenseID != id {
			continue
		}
		approver, err := asAddress(values[1])
		if err != nil {
			return nil, readErr("ExpenseApproved logs", err)
		}

		ts, err := g.client.BlockTimestamp(ctx, log.BlockNumber)
		if err != nil {
			return nil, readErr("block timestamp", err)
		}

		approvals = append(approvals, model.Approval{
			Approver:    approver.Hex(),
			BlockNumber: log.BlockNumber,
			TxHash:      log.TxHash.Hex(),
			Timestamp:   ts,
		})
	}

	return approvals, nil
}

func (g *Gateway) call(ctx context.Context, contract common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, readErr(method, fmt.Errorf("pack: %w", err))
	}
	msg := ethereum.CallMsg{To: &contract, Data: data}
	resp, err := g.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, readErr(method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, readErr(method, fmt.Errorf("unpack: %w", err))
	}
	return values, nil
}

func readErr(method string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRead, method, err)
}
