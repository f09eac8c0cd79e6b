package model

import (
	"math/big"
	"time"

	"github.com/ereal-labs/ereal/internal/apierror"
)

// PaymentStatus is shared by the boleto, BR code and payment link families.
// The zero value is Pending; Paid and Failed are terminal.
type PaymentStatus uint8

const (
	StatusPending PaymentStatus = iota
	StatusPaid
	StatusFailed
)

func (s PaymentStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPaid:
		return "paid"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type WithdrawalStatus uint8

const (
	WithdrawalPending WithdrawalStatus = iota
	WithdrawalApproved
	WithdrawalCancelled
)

func (s WithdrawalStatus) String() string {
	switch s {
	case WithdrawalPending:
		return "pending"
	case WithdrawalApproved:
		return "approved"
	case WithdrawalCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Boleto is a bank-slip payment record. Records are append-only: a boleto is
// registered once, settles once and is never deleted.
type Boleto struct {
	ID          string        `json:"id"`
	Amount      *big.Int      `json:"amount"`
	Fee         *big.Int      `json:"fee"`
	Name        string        `json:"name"`
	TaxID       string        `json:"tax_id"`
	Beneficiary string        `json:"beneficiary"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BrCode is an instant-payment (Pix / QR) record. Tags and PictureURL are
// display metadata supplied by the gateway.
type BrCode struct {
	ID          string        `json:"id"`
	Amount      *big.Int      `json:"amount"`
	Fee         *big.Int      `json:"fee"`
	Tags        []string      `json:"tags,omitempty"`
	PictureURL  string        `json:"picture_url,omitempty"`
	Beneficiary string        `json:"beneficiary"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// WithdrawalRequest reserves a withdrawal without moving funds; value moves on
// approval only.
type WithdrawalRequest struct {
	ID        uint64           `json:"id"`
	User      string           `json:"user"`
	Amount    *big.Int         `json:"amount"`
	Fee       *big.Int         `json:"fee"`
	Status    WithdrawalStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// RateEntry maps an installment count to its interest and spread rates, both
// in basis points.
type RateEntry struct {
	InterestBps int64 `json:"interest_rate"`
	SpreadBps   int64 `json:"spread_rate"`
}

// PaymentLink is an installment-aware settlement record. Rates are pinned at
// creation so later rate-table edits cannot change the economics of an
// existing link. FlatFee, when set, switches the link to the explicit-fee
// model and the pinned rates are ignored.
type PaymentLink struct {
	UUID         string        `json:"uuid"`
	Amount       *big.Int      `json:"amount"`
	Installments int           `json:"installments"`
	InterestBps  int64         `json:"interest_rate"`
	SpreadBps    int64         `json:"spread_rate"`
	FlatFee      *big.Int      `json:"flat_fee,omitempty"`
	Customer     string        `json:"customer"`
	Beneficiary  string        `json:"beneficiary,omitempty"`
	Status       PaymentStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// LinkBreakdown is the exact integer split of a payment link's gross amount.
// Interest + Spread + Net == Amount and Treasury + Beneficiary == Spread. Only
// Net, Treasury and Beneficiary are minted; Interest is a financing cost.
type LinkBreakdown struct {
	Interest    *big.Int
	Spread      *big.Int
	Treasury    *big.Int
	Beneficiary *big.Int
	Net         *big.Int
}

var (
	bpsDenominator = big.NewInt(10000)
	treasuryShare  = big.NewInt(35)
	hundred        = big.NewInt(100)
)

// bpsOf computes amount*bps/10000 with truncating division.
func bpsOf(amount *big.Int, bps int64) *big.Int {
	product := new(big.Int).Mul(amount, big.NewInt(bps))
	return product.Div(product, bpsDenominator)
}

// Breakdown computes the fee split for a link. In the installment model the
// interest and spread amounts come off the gross, the treasury takes 35% of
// the spread (truncating) and the beneficiary the remainder. In the flat-fee
// model the whole fee goes to the treasury.
func (pl *PaymentLink) Breakdown() (LinkBreakdown, error) {
	if pl.FlatFee != nil {
		if pl.FlatFee.Cmp(pl.Amount) > 0 {
			return LinkBreakdown{}, apierror.NewAPIError(apierror.ErrArithmeticUnderflow,
				"fee exceeds payment link amount", pl.UUID)
		}
		return LinkBreakdown{
			Interest:    big.NewInt(0),
			Spread:      big.NewInt(0),
			Treasury:    new(big.Int).Set(pl.FlatFee),
			Beneficiary: big.NewInt(0),
			Net:         new(big.Int).Sub(pl.Amount, pl.FlatFee),
		}, nil
	}

	interest := bpsOf(pl.Amount, pl.InterestBps)
	spread := bpsOf(pl.Amount, pl.SpreadBps)
	treasury := new(big.Int).Mul(spread, treasuryShare)
	treasury.Div(treasury, hundred)
	beneficiary := new(big.Int).Sub(spread, treasury)

	net := new(big.Int).Sub(pl.Amount, interest)
	net.Sub(net, spread)
	if net.Sign() < 0 {
		return LinkBreakdown{}, apierror.NewAPIError(apierror.ErrArithmeticUnderflow,
			"combined rates exceed payment link amount", pl.UUID)
	}
	return LinkBreakdown{
		Interest:    interest,
		Spread:      spread,
		Treasury:    treasury,
		Beneficiary: beneficiary,
		Net:         net,
	}, nil
}
