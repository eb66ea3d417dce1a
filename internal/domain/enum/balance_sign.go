package enum

import "fmt"

// BalanceSign filters sales by the sign of their balance
type BalanceSign string

const (
	BalanceSignDebt   BalanceSign = "debt"   // balance > 0, client owes the company
	BalanceSignCredit BalanceSign = "credit" // balance < 0, company owes the client
	BalanceSignZero   BalanceSign = "zero"
)

// ParseBalanceSign returns the sign named by s
func ParseBalanceSign(s string) (BalanceSign, error) {
	switch BalanceSign(s) {
	case BalanceSignDebt, BalanceSignCredit, BalanceSignZero:
		return BalanceSign(s), nil
	}
	return "", fmt.Errorf("unknown balance filter %q", s)
}
