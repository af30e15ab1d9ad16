package challenge

import "errors"

var (
	ErrTreasuryCreation  = errors.New("treasury account creation failed")
	ErrClassRegistration = errors.New("nft class registration failed")
	ErrIdentityCreation  = errors.New("participant account creation failed")
	ErrDistribution      = errors.New("nft distribution failed")
	ErrVerification      = errors.New("holdings verification failed")
)
