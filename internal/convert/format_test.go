package convert

import (
	"errors"
	"testing"
)

func TestAddressLabel(t *testing.T) {
	label, err := AddressLabel("0xfbc86d1B462C76328D812C50cC2b727dF708D978")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "0xfbc8...D978" {
		t.Fatalf("label mismatch: %q", label)
	}
	if len(label) != 13 {
		t.Fatalf("label length %d, want 13", len(label))
	}
}

func TestAddressLabelInvalid(t *testing.T) {
	for _, input := range []string{"", "0x123", "not-an-address", "0xZZc86d1B462C76328D812C50cC2b727dF708D978"} {
		if _, err := AddressLabel(input); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("input %q: want ErrInvalidAddress, got %v", input, err)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date(0); got != NoDeadline {
		t.Fatalf("zero timestamp: %q", got)
	}
	// 2024-03-15T12:00:00Z
	if got := Date(1710504000); got != "2024-03-15" {
		t.Fatalf("date mismatch: %q", got)
	}
}

func TestEnumLabels(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FundingTypeLabel(0), "GENERAL"},
		{FundingTypeLabel(1), "EVENT"},
		{FundingTypeLabel(2), "TRAVEL"},
		{FundingTypeLabel(9), UnknownLabel},
		{CampaignStatusLabel(0), "ACTIVE"},
		{CampaignStatusLabel(1), "COMPLETED"},
		{CampaignStatusLabel(2), "CANCELLED"},
		{CampaignStatusLabel(3), UnknownLabel},
		{ExpenseStatusLabel(0), "PENDING"},
		{ExpenseStatusLabel(1), "APPROVED"},
		{ExpenseStatusLabel(2), "REJECTED"},
		{ExpenseStatusLabel(3), "REIMBURSED"},
		{ExpenseStatusLabel(255), UnknownLabel},
	}
	for i, c := range cases {
		if c.got != c.want {
			t.Fatalf("case %d: got %q want %q", i, c.got, c.want)
		}
	}
}

func TestReceiptURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ipfs://QmHash123", "https://ipfs.io/ipfs/QmHash123"},
		{"https://example.com/receipt.pdf", "https://example.com/receipt.pdf"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ReceiptURL(c.in, DefaultIPFSGateway); got != c.want {
			t.Fatalf("input %q: got %q want %q", c.in, got, c.want)
		}
	}
}
