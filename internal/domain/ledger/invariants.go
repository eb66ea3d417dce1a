// Package ledger holds the pure arithmetic that keeps a sale record consistent.
//
// Every persisted sale carries four derived fields (clamped delivered quantity,
// amount, balance, settled flag). They are never set by callers; Derive
// recomputes them from the authoritative inputs right before each write.
package ledger

import "github.com/shopspring/decimal"

// Inputs are the caller-controlled fields of a sale.
type Inputs struct {
	Quantity  decimal.Decimal
	Delivered decimal.Decimal
	UnitPrice decimal.Decimal
	Payment   decimal.Decimal
}

// Derived are the fields computed from Inputs.
type Derived struct {
	Delivered decimal.Decimal
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Settled   bool
}

// Derive computes the derived fields of a sale.
//
//	delivered = clamp(delivered, 0, quantity)
//	amount    = quantity * unitPrice
//	balance   = round2(amount - payment)   (>0 debt, <0 credit)
//	settled   = amount > 0 && balance <= 0
//
// Negative payment is not rejected here.
func Derive(in Inputs) Derived {
	amount := in.Quantity.Mul(in.UnitPrice)
	balance := Round2(amount.Sub(in.Payment))

	return Derived{
		Delivered: Clamp(in.Delivered, decimal.Zero, decimal.Max(in.Quantity, decimal.Zero)),
		Amount:    amount,
		Balance:   balance,
		Settled:   amount.IsPositive() && !balance.IsPositive(),
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Clamp bounds d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// Floor0 returns d, or zero when d is negative.
func Floor0(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}

// Surplus is the credit a sale holds for its client: |balance| when the
// balance is negative, zero otherwise.
func Surplus(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return balance.Neg()
	}
	return decimal.Zero
}

// Outstanding is what the client still owes: the balance when positive.
func Outstanding(balance decimal.Decimal) decimal.Decimal {
	return Floor0(balance)
}
