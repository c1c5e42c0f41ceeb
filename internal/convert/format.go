package convert

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress marks input that is not a well-formed hex address.
var ErrInvalidAddress = errors.New("invalid address")

// NoDeadline is the display marker for the 0 timestamp sentinel.
const NoDeadline = "No deadline"

// DefaultIPFSGateway serves ipfs:// receipt URIs over HTTP.
const DefaultIPFSGateway = "https://ipfs.io/ipfs/"

// AddressLabel truncates an address to its first 6 and last 4 characters,
// case-preserving: "0xAbCd...1234". Always 13 characters.
func AddressLabel(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return address[:6] + "..." + address[len(address)-4:], nil
}

// Date converts Unix seconds to a calendar date. The 0 sentinel means the
// value was never set and maps to NoDeadline, never to the epoch date.
func Date(unixSeconds uint64) string {
	if unixSeconds == 0 {
		return NoDeadline
	}
	return time.Unix(int64(unixSeconds), 0).UTC().Format("2006-01-02")
}

// UnknownLabel is returned for ordinals outside an enum's table. Listing
// aggregation must not fail on a value a newer contract may have added.
const UnknownLabel = "UNKNOWN"

var (
	fundingTypeLabels    = []string{"GENERAL", "EVENT", "TRAVEL"}
	campaignStatusLabels = []string{"ACTIVE", "COMPLETED", "CANCELLED"}
	expenseStatusLabels  = []string{"PENDING", "APPROVED", "REJECTED", "REIMBURSED"}
)

// FundingTypeLabel maps a funding-type ordinal to its display label.
func FundingTypeLabel(ordinal uint8) string {
	return lookupLabel(fundingTypeLabels, ordinal)
}

// CampaignStatusLabel maps a campaign-status ordinal to its display label.
func CampaignStatusLabel(ordinal uint8) string {
	return lookupLabel(campaignStatusLabels, ordinal)
}

// ExpenseStatusLabel maps an expense-status ordinal to its display label.
func ExpenseStatusLabel(ordinal uint8) string {
	return lookupLabel(expenseStatusLabels, ordinal)
}

func lookupLabel(labels []string, ordinal uint8) string {
	if int(ordinal) >= len(labels) {
		return UnknownLabel
	}
	return labels[ordinal]
}

// ReceiptURL rewrites an ipfs:// receipt URI to an HTTP gateway URL.
// Other schemes pass through unchanged.
func ReceiptURL(uri, gateway string) string {
	if gateway == "" {
		gateway = DefaultIPFSGateway
	}
	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return gateway + cid
	}
	return uri
}
