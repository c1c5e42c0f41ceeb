package txbuild

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/contracts"
)

func testConfig() contracts.Config {
	return contracts.Config{
		Registry:      common.HexToAddress("0x0000000000000000000000000000000000000001"),
		FundingPool:   common.HexToAddress("0x0000000000000000000000000000000000000002"),
		ExpenseLedger: common.HexToAddress("0x0000000000000000000000000000000000000003"),
	}
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(testConfig())
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return b
}

func TestCreateOrganization(t *testing.T) {
	b := newTestBuilder(t)

	calls, err := b.CreateOrganization("Chess Club", "weekly games", "teach chess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}
	call := calls[0]
	if call.To != testConfig().Registry {
		t.Fatalf("to: %s", call.To)
	}
	if call.Value != nil {
		t.Fatalf("value should be nil: %s", call.Value)
	}

	registryABI, err := contracts.RegistryABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	if !bytes.Equal(call.Data[:4], registryABI.Methods["createOrganization"].ID) {
		t.Fatalf("selector mismatch: %x", call.Data[:4])
	}
}

func TestCreateOrganizationNotReady(t *testing.T) {
	b := newTestBuilder(t)
	calls, err := b.CreateOrganization("Chess Club", "", "teach chess")
	if err != nil || calls != nil {
		t.Fatalf("want nil, nil; got %v, %v", calls, err)
	}
}

func TestAddMember(t *testing.T) {
	b := newTestBuilder(t)
	org := common.HexToAddress("0x0000000000000000000000000000000000000010")

	calls, err := b.AddMember(org, "0x0000000000000000000000000000000000000013")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 || calls[0].To != org {
		t.Fatalf("calls: %+v", calls)
	}

	// Blank means the form is not filled in yet.
	calls, err = b.AddMember(org, "  ")
	if err != nil || calls != nil {
		t.Fatalf("want nil, nil; got %v, %v", calls, err)
	}

	// Malformed input is an error, not an incomplete form.
	_, err = b.AddMember(org, "not-an-address")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestCreateCampaignFloorsAmounts(t *testing.T) {
	b := newTestBuilder(t)

	calls, err := b.CreateCampaign(CampaignForm{
		Name:        "Tournament",
		Description: "annual open",
		Goal:        "5000.009",
		Deadline:    1710504000,
		FundingType: 1,
		Items: []BudgetItem{
			{Label: "Venue", Amount: "3000.50"},
			{Label: "", Amount: ""}, // empty rows are dropped
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}

	poolABI, err := contracts.FundingPoolABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	method := poolABI.Methods["createCampaign"]
	if !bytes.Equal(calls[0].Data[:4], method.ID) {
		t.Fatalf("selector mismatch: %x", calls[0].Data[:4])
	}
	args, err := method.Inputs.Unpack(calls[0].Data[4:])
	if err != nil {
		t.Fatalf("unpack args: %v", err)
	}

	goal := args[2].(*big.Int)
	if goal.Int64() != 500000 {
		t.Fatalf("goal not floored to cents: %s", goal)
	}
	labels := args[5].([]string)
	amounts := args[6].([]*big.Int)
	if len(labels) != 1 || labels[0] != "Venue" {
		t.Fatalf("labels: %v", labels)
	}
	if len(amounts) != 1 || amounts[0].Int64() != 300050 {
		t.Fatalf("amounts: %v", amounts)
	}
}

func TestCreateCampaignInvalid(t *testing.T) {
	b := newTestBuilder(t)

	form := CampaignForm{Name: "n", Description: "d", Goal: "0"}
	if _, err := b.CreateCampaign(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero goal: want ErrInvalidInput, got %v", err)
	}

	form.Goal = "abc"
	if _, err := b.CreateCampaign(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed goal: want ErrInvalidInput, got %v", err)
	}

	form.Goal = "100"
	form.FundingType = 3
	if _, err := b.CreateCampaign(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("funding type: want ErrInvalidInput, got %v", err)
	}

	form.FundingType = 0
	form.Items = []BudgetItem{{Label: "Venue", Amount: ""}}
	if _, err := b.CreateCampaign(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("half-filled item: want ErrInvalidInput, got %v", err)
	}
}

func TestContributeValue(t *testing.T) {
	b := newTestBuilder(t)

	calls, err := b.Contribute(7, "1.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}
	want, _ := new(big.Int).SetString("1500000000000000000", 10)
	if calls[0].Value == nil || calls[0].Value.Cmp(want) != 0 {
		t.Fatalf("value: %s", calls[0].Value)
	}
	if calls[0].To != testConfig().FundingPool {
		t.Fatalf("to: %s", calls[0].To)
	}
}

func TestContributeNotReady(t *testing.T) {
	b := newTestBuilder(t)

	calls, err := b.Contribute(7, "")
	if err != nil || calls != nil {
		t.Fatalf("blank: want nil, nil; got %v, %v", calls, err)
	}

	calls, err = b.Contribute(7, "0")
	if err != nil || calls != nil {
		t.Fatalf("zero: want nil, nil; got %v, %v", calls, err)
	}

	if _, err := b.Contribute(7, "-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative: want ErrInvalidInput, got %v", err)
	}
}

func TestSubmitExpense(t *testing.T) {
	b := newTestBuilder(t)

	form := ExpenseForm{
		Description:       "Venue deposit",
		Amount:            "1500",
		ReceiptURI:        "ipfs://QmReceipt",
		CampaignID:        "4",
		RequiredApprovals: 2,
	}
	calls, err := b.SubmitExpense(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 || calls[0].To != testConfig().ExpenseLedger {
		t.Fatalf("calls: %+v", calls)
	}

	ledgerABI, err := contracts.ExpenseLedgerABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	method := ledgerABI.Methods["submitExpense"]
	args, err := method.Inputs.Unpack(calls[0].Data[4:])
	if err != nil {
		t.Fatalf("unpack args: %v", err)
	}
	if amount := args[1].(*big.Int); amount.Int64() != 150000 {
		t.Fatalf("amount: %s", amount)
	}
	if id := args[3].(*big.Int); id.Int64() != 4 {
		t.Fatalf("campaign id: %s", id)
	}
}

func TestSubmitExpenseInvalid(t *testing.T) {
	b := newTestBuilder(t)

	form := ExpenseForm{Description: "d", Amount: "10", CampaignID: "4"}
	if _, err := b.SubmitExpense(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero approvals: want ErrInvalidInput, got %v", err)
	}

	form.RequiredApprovals = 1
	form.Amount = "0"
	if _, err := b.SubmitExpense(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero amount: want ErrInvalidInput, got %v", err)
	}

	form.Amount = "10"
	form.CampaignID = "not-a-number"
	if _, err := b.SubmitExpense(form); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("campaign id: want ErrInvalidInput, got %v", err)
	}
}

func TestSubmitExpenseNotReady(t *testing.T) {
	b := newTestBuilder(t)
	calls, err := b.SubmitExpense(ExpenseForm{Description: "d", Amount: "10"})
	if err != nil || calls != nil {
		t.Fatalf("want nil, nil; got %v, %v", calls, err)
	}
}

func TestApproveAndReject(t *testing.T) {
	b := newTestBuilder(t)
	ledgerABI, err := contracts.ExpenseLedgerABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}

	calls, err := b.ApproveExpense(5)
	if err != nil || len(calls) != 1 {
		t.Fatalf("approve: %v, %v", calls, err)
	}
	if !bytes.Equal(calls[0].Data[:4], ledgerABI.Methods["approveExpense"].ID) {
		t.Fatalf("approve selector: %x", calls[0].Data[:4])
	}

	calls, err = b.RejectExpense(5)
	if err != nil || len(calls) != 1 {
		t.Fatalf("reject: %v, %v", calls, err)
	}
	if !bytes.Equal(calls[0].Data[:4], ledgerABI.Methods["rejectExpense"].ID) {
		t.Fatalf("reject selector: %x", calls[0].Data[:4])
	}
}

func TestReimburseExpense(t *testing.T) {
	b := newTestBuilder(t)

	calls, err := b.ReimburseExpense(5, "0x0000000000000000000000000000000000000012", "0.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}
	want, _ := new(big.Int).SetString("250000000000000000", 10)
	if calls[0].Value == nil || calls[0].Value.Cmp(want) != 0 {
		t.Fatalf("value: %s", calls[0].Value)
	}

	calls, err = b.ReimburseExpense(5, "", "0.25")
	if err != nil || calls != nil {
		t.Fatalf("no recipient: want nil, nil; got %v, %v", calls, err)
	}

	calls, err = b.ReimburseExpense(5, "0x0000000000000000000000000000000000000012", "0")
	if err != nil || calls != nil {
		t.Fatalf("zero value: want nil, nil; got %v, %v", calls, err)
	}

	_, err = b.ReimburseExpense(5, "bogus", "0.25")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad recipient: want ErrInvalidInput, got %v", err)
	}
}
