package ledger

import "github.com/nikmy/nestedtxn/pkg/errors"

var (
	ErrInsufficientFunds = errors.Error("insufficient funds")
	ErrUnknownAccount    = errors.Error("unknown account")
	ErrInvalidTransfer   = errors.Error("invalid transfer")
)

type Account struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`

	// DryRun transfers run all checks and are rolled back.
	DryRun bool `json:"dry_run"`
}

type Receipt struct {
	ID      int64 `json:"id"`
	DryRun  bool  `json:"dry_run"`
	Audited bool  `json:"audited"`
}

func (t Transfer) validate() error {
	switch {
	case t.From == "" || t.To == "":
		return errors.Wrap(ErrInvalidTransfer, "empty account id")
	case t.From == t.To:
		return errors.Wrap(ErrInvalidTransfer, "same source and destination")
	case t.Amount <= 0:
		return errors.Wrap(ErrInvalidTransfer, "non-positive amount")
	default:
		return nil
	}
}
