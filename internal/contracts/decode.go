package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"clubfund/internal/model"
)

// Positional tuples are decoded into named records here, once, at the
// gateway boundary. Nothing downstream sees raw []interface{} values.

func decodeOrganization(address common.Address, values []interface{}) (model.Organization, error) {
	if len(values) != 5 {
		return model.Organization{}, fmt.Errorf("organization tuple: want 5 values, got %d", len(values))
	}
	name, err := asString(values[0])
	if err != nil {
		return model.Organization{}, fmt.Errorf("name: %w", err)
	}
	description, err := asString(values[1])
	if err != nil {
		return model.Organization{}, fmt.Errorf("description: %w", err)
	}
	mission, err := asString(values[2])
	if err != nil {
		return model.Organization{}, fmt.Errorf("mission: %w", err)
	}
	creationDate, err := asUint64(values[3])
	if err != nil {
		return model.Organization{}, fmt.Errorf("creation date: %w", err)
	}
	admin, err := asAddress(values[4])
	if err != nil {
		return model.Organization{}, fmt.Errorf("admin: %w", err)
	}

	return model.Organization{
		Address:      address.Hex(),
		Name:         name,
		Description:  description,
		Mission:      mission,
		CreationDate: creationDate,
		Admin:        admin.Hex(),
	}, nil
}

func decodeCampaign(id uint64, values []interface{}, withOrganization bool) (model.Campaign, error) {
	want := 7
	if withOrganization {
		want = 8
	}
	if len(values) != want {
		return model.Campaign{}, fmt.Errorf("campaign tuple: want %d values, got %d", want, len(values))
	}

	name, err := asString(values[0])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("name: %w", err)
	}
	description, err := asString(values[1])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("description: %w", err)
	}
	goal, err := asBigInt(values[2])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("goal: %w", err)
	}
	collected, err := asBigInt(values[3])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("collected: %w", err)
	}
	deadline, err := asUint64(values[4])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("deadline: %w", err)
	}
	fundingType, err := asUint8(values[5])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("funding type: %w", err)
	}
	status, err := asUint8(values[6])
	if err != nil {
		return model.Campaign{}, fmt.Errorf("status: %w", err)
	}

	campaign := model.Campaign{
		ID:          id,
		Name:        name,
		Description: description,
		Goal:        goal,
		Collected:   collected,
		Deadline:    deadline,
		FundingType: fundingType,
		Status:      status,
	}

	if withOrganization {
		organization, err := asAddress(values[7])
		if err != nil {
			return model.Campaign{}, fmt.Errorf("organization: %w", err)
		}
		campaign.Organization = organization.Hex()
	}

	return campaign, nil
}

func decodeExpenseItems(values []interface{}) ([]model.ExpenseItem, error) {
	if len(values) != 2 {
		return nil, fmt.Errorf("expense items tuple: want 2 values, got %d", len(values))
	}
	labels, ok := values[0].([]string)
	if !ok {
		return nil, fmt.Errorf("labels: unsupported type %T", values[0])
	}
	amounts, ok := values[1].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("amounts: unsupported type %T", values[1])
	}
	if len(labels) != len(amounts) {
		return nil, fmt.Errorf("expense items: %d labels vs %d amounts", len(labels), len(amounts))
	}

	items := make([]model.ExpenseItem, 0, len(labels))
	for i, label := range labels {
		items = append(items, model.ExpenseItem{
			Label:  label,
			Amount: new(big.Int).Set(amounts[i]),
		})
	}
	return items, nil
}

func decodeExpense(id uint64, values []interface{}) (model.Expense, error) {
	if len(values) != 9 {
		return model.Expense{}, fmt.Errorf("expense tuple: want 9 values, got %d", len(values))
	}

	description, err := asString(values[0])
	if err != nil {
		return model.Expense{}, fmt.Errorf("description: %w", err)
	}
	amount, err := asBigInt(values[1])
	if err != nil {
		return model.Expense{}, fmt.Errorf("amount: %w", err)
	}
	receiptURI, err := asString(values[2])
	if err != nil {
		return model.Expense{}, fmt.Errorf("receipt uri: %w", err)
	}
	requester, err := asAddress(values[3])
	if err != nil {
		return model.Expense{}, fmt.Errorf("requester: %w", err)
	}
	campaignID, err := asUint64(values[4])
	if err != nil {
		return model.Expense{}, fmt.Errorf("campaign id: %w", err)
	}
	status, err := asUint8(values[5])
	if err != nil {
		return model.Expense{}, fmt.Errorf("status: %w", err)
	}
	submissionDate, err := asUint64(values[6])
	if err != nil {
		return model.Expense{}, fmt.Errorf("submission date: %w", err)
	}
	requiredApprovals, err := asUint64(values[7])
	if err != nil {
		return model.Expense{}, fmt.Errorf("required approvals: %w", err)
	}
	approvalCount, err := asUint64(values[8])
	if err != nil {
		return model.Expense{}, fmt.Errorf("approval count: %w", err)
	}

	return model.Expense{
		ID:                id,
		Description:       description,
		Amount:            amount,
		ReceiptURI:        receiptURI,
		Requester:         requester.Hex(),
		CampaignID:        campaignID,
		Status:            status,
		SubmissionDate:    submissionDate,
		RequiredApprovals: requiredApprovals,
		ApprovalCount:     approvalCount,
	}, nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asString(value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("unsupported string type %T", value)
}

func asBool(value interface{}) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("unsupported bool type %T", value)
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint64(value interface{}) (uint64, error) {
	b, err := asBigInt(value)
	if err != nil {
		return 0, err
	}
	if !b.IsUint64() {
		return 0, fmt.Errorf("uint64 overflow: %s", b.String())
	}
	return b.Uint64(), nil
}

func asUint8(value interface{}) (uint8, error) {
	b, err := asBigInt(value)
	if err != nil {
		return 0, err
	}
	if b.BitLen() > 8 {
		return 0, fmt.Errorf("uint8 overflow: %s", b.String())
	}
	return uint8(b.Uint64()), nil
}
