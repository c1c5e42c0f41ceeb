package txbuild

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidInput marks malformed form input caught before encoding a
// write: a bad amount, address, or id. Callers disable the submit
// affordance instead of attempting a doomed submission.
var ErrInvalidInput = errors.New("invalid input")

// Call is one unsigned call description. Signing, broadcasting, and
// confirmation waiting belong to the external submission pipeline.
type Call struct {
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *big.Int       `json:"value,omitempty"`
}

// Submitter is the external submission pipeline's contract: it signs and
// broadcasts a prepared call and reports the outcome. On success callers
// re-run the full aggregation; they never mutate view state optimistically.
type Submitter interface {
	Submit(ctx context.Context, call Call) error
}
