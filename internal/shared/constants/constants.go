package constants

const (
	// HTTP Headers
	HeaderXRequestID = "X-Request-ID"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TableBranches            = "branches"
	TableTickets             = "tickets"
	TableTicketCharges       = "ticket_charges"
	TableFreeHoursGrants     = "business_free_hours"
	TableSubscriptions       = "subscriptions"
	TableSubscriptionPlates  = "subscription_plates"
	TableSubscriptionPlans   = "subscription_plans"
	TableSubscriptionOverage = "subscription_overages"
	TableRateBases           = "rate_base_history"

	// Redis key prefixes
	RedisKeyExitGuard = "parking:exit:"
	RedisKeyRateLimit = "parking:ratelimit:"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
