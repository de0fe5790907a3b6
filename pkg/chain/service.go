package chain

// Service is everything the application needs from the chain
type Service interface {
	TokenReader
	TokenWriter
	ReputationReader
	ReputationWriter
	TransactionReader
}

var _ Service = (*Client)(nil)
