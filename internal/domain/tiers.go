package domain

// TierForSpend maps a customer's trailing 12-month completed spend to a buyer
// tier.
func TierForSpend(totalSpent float64) string {
	switch {
	case totalSpent >= 100000:
		return BuyerGold
	case totalSpent >= 10000:
		return BuyerSilver
	case totalSpent >= 1000:
		return BuyerVerified
	default:
		return BuyerNotVerified
	}
}
