package contracts

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/model"
)

// Fixtures are ABI-packed and unpacked through the real parsed ABIs so the
// decoders see exactly the value types the gateway hands them.

func TestDecodeOrganization(t *testing.T) {
	parsed, err := RegistryABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	outputs := parsed.Methods["organizations"].Outputs

	orgAddr := common.HexToAddress("0x0000000000000000000000000000000000000010")
	admin := common.HexToAddress("0x0000000000000000000000000000000000000011")
	data, err := outputs.Pack("Chess Club", "weekly games", "teach chess", big.NewInt(1710504000), admin)
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}
	values, err := outputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack outputs: %v", err)
	}

	org, err := decodeOrganization(orgAddr, values)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := model.Organization{
		Address:      orgAddr.Hex(),
		Name:         "Chess Club",
		Description:  "weekly games",
		Mission:      "teach chess",
		CreationDate: 1710504000,
		Admin:        admin.Hex(),
	}
	if !reflect.DeepEqual(org, want) {
		t.Fatalf("got %+v\nwant %+v", org, want)
	}
}

func TestDecodeOrganizationWrongArity(t *testing.T) {
	if _, err := decodeOrganization(common.Address{}, []interface{}{"only", "three", "values"}); err == nil {
		t.Fatal("want error for short tuple")
	}
}

func TestDecodeCampaignDetails(t *testing.T) {
	parsed, err := FundingPoolABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	outputs := parsed.Methods["getCampaignDetails"].Outputs

	data, err := outputs.Pack("Tournament", "annual open", big.NewInt(500000), big.NewInt(123456), big.NewInt(1710504000), uint8(1), uint8(0))
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}
	values, err := outputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack outputs: %v", err)
	}

	campaign, err := decodeCampaign(7, values, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if campaign.ID != 7 || campaign.Name != "Tournament" {
		t.Fatalf("campaign: %+v", campaign)
	}
	if campaign.Goal.Int64() != 500000 || campaign.Collected.Int64() != 123456 {
		t.Fatalf("amounts: goal=%s collected=%s", campaign.Goal, campaign.Collected)
	}
	if campaign.FundingType != 1 || campaign.Status != 0 {
		t.Fatalf("ordinals: %+v", campaign)
	}
	if campaign.Organization != "" {
		t.Fatalf("organization should be unset: %q", campaign.Organization)
	}
}

func TestDecodeCampaignWithOrganization(t *testing.T) {
	parsed, err := FundingPoolABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	outputs := parsed.Methods["campaigns"].Outputs

	org := common.HexToAddress("0x0000000000000000000000000000000000000010")
	data, err := outputs.Pack("Tournament", "annual open", big.NewInt(500000), big.NewInt(0), big.NewInt(0), uint8(0), uint8(2), org)
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}
	values, err := outputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack outputs: %v", err)
	}

	campaign, err := decodeCampaign(3, values, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if campaign.Organization != org.Hex() {
		t.Fatalf("organization: %q", campaign.Organization)
	}
	if campaign.Deadline != 0 || campaign.Status != 2 {
		t.Fatalf("campaign: %+v", campaign)
	}

	// The 8-value tuple is rejected when the caller expects 7.
	if _, err := decodeCampaign(3, values, false); err == nil {
		t.Fatal("want arity error")
	}
}

func TestDecodeExpenseItems(t *testing.T) {
	parsed, err := FundingPoolABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	outputs := parsed.Methods["getExpenseItems"].Outputs

	data, err := outputs.Pack([]string{"Venue", "Prizes"}, []*big.Int{big.NewInt(300000), big.NewInt(200000)})
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}
	values, err := outputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack outputs: %v", err)
	}

	items, err := decodeExpenseItems(values)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.ExpenseItem{
		{Label: "Venue", Amount: big.NewInt(300000)},
		{Label: "Prizes", Amount: big.NewInt(200000)},
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("items: %+v", items)
	}
}

func TestDecodeExpenseItemsMismatch(t *testing.T) {
	values := []interface{}{[]string{"Venue"}, []*big.Int{}}
	if _, err := decodeExpenseItems(values); err == nil {
		t.Fatal("want error for label/amount mismatch")
	}
}

func TestDecodeExpense(t *testing.T) {
	parsed, err := ExpenseLedgerABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	outputs := parsed.Methods["getExpenseDetails"].Outputs

	requester := common.HexToAddress("0x0000000000000000000000000000000000000012")
	data, err := outputs.Pack(
		"Venue deposit",
		big.NewInt(150000),
		"ipfs://QmReceipt",
		requester,
		big.NewInt(4),
		uint8(1),
		big.NewInt(1710504000),
		big.NewInt(2),
		big.NewInt(1),
	)
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}
	values, err := outputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack outputs: %v", err)
	}

	expense, err := decodeExpense(9, values)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := model.Expense{
		ID:                9,
		Description:       "Venue deposit",
		Amount:            big.NewInt(150000),
		ReceiptURI:        "ipfs://QmReceipt",
		Requester:         requester.Hex(),
		CampaignID:        4,
		Status:            1,
		SubmissionDate:    1710504000,
		RequiredApprovals: 2,
		ApprovalCount:     1,
	}
	if !reflect.DeepEqual(expense, want) {
		t.Fatalf("got %+v\nwant %+v", expense, want)
	}
}

func TestExpenseApprovedLogDecode(t *testing.T) {
	parsed, err := ExpenseLedgerABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	event := parsed.Events["ExpenseApproved"]

	approver := common.HexToAddress("0x0000000000000000000000000000000000000011")
	data, err := event.Inputs.Pack(big.NewInt(7), approver)
	if err != nil {
		t.Fatalf("pack log data: %v", err)
	}
	values, err := event.Inputs.Unpack(data)
	if err != nil {
		t.Fatalf("unpack log data: %v", err)
	}

	expenseID, err := asUint64(values[0])
	if err != nil {
		t.Fatalf("expense id: %v", err)
	}
	got, err := asAddress(values[1])
	if err != nil {
		t.Fatalf("approver: %v", err)
	}
	if expenseID != 7 || got != approver {
		t.Fatalf("decoded id=%d approver=%s", expenseID, got)
	}
}

func TestAsUint8Overflow(t *testing.T) {
	if _, err := asUint8(big.NewInt(256)); err == nil {
		t.Fatal("want overflow error")
	}
	v, err := asUint8(big.NewInt(255))
	if err != nil || v != 255 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestAsUint64Overflow(t *testing.T) {
	over := new(big.Int).Lsh(big.NewInt(1), 64)
	if _, err := asUint64(over); err == nil {
		t.Fatal("want overflow error")
	}
	if _, err := asUint64("not a number"); err == nil {
		t.Fatal("want type error")
	}
}
