package domain

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// Delivery types describe how a provider renders service.
const (
	DeliveryLocal  = "LOCAL"
	DeliveryRemote = "REMOTE"
	DeliveryHybrid = "HYBRID"
)

// Search modes
const (
	ModeNearby = "NEARBY"
	ModeRemote = "REMOTE"
)

// Transaction statuses
const (
	TxInitiated         = "INITIATED"
	TxCustomerConfirmed = "CUSTOMER_CONFIRMED"
	TxCompleted         = "COMPLETED"
	TxRejected          = "REJECTED"
)

// Statement statuses
const (
	StatementUnpaid = "UNPAID"
	StatementPaid   = "PAID"
	StatementWaived = "WAIVED"
)

// Settlement actors
const (
	ActorSystem = "SYSTEM"
	ActorAdmin  = "ADMIN"
)

// Buyer tiers, ranked. Computed from a customer's 12-month completed spend.
const (
	BuyerNotVerified = "NOT_VERIFIED"
	BuyerVerified    = "VERIFIED"
	BuyerSilver      = "SILVER"
	BuyerGold        = "GOLD"
)

// BuyerTierRank orders tiers for offer eligibility checks.
var BuyerTierRank = map[string]int{
	BuyerNotVerified: 0,
	BuyerVerified:    1,
	BuyerSilver:      2,
	BuyerGold:        3,
}

// Offer types
const (
	OfferPercentage  = "PERCENTAGE"
	OfferFlat        = "FLAT"
	OfferBuyXGetY    = "BUY_X_GET_Y"
	OfferConditional = "CONDITIONAL"
	OfferCustom      = "CUSTOM"
)
