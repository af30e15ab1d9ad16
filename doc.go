// Module nft-challenge-go issues a class of non-fungible tokens on Hedera and
// hands one item to each participant of a challenge.
//
// # Packages
//
//   - pkg/minting: bounded-retry batch minting over an Issuer
//   - pkg/challenge: treasury, class, mint and distribution orchestration
//   - pkg/ledger: Hedera-backed implementation of the challenge capabilities
//   - pkg/mirror: mirror node REST client used for holdings lookups
//   - pkg/shared: network, operator and logger configuration
//
// # Running
//
//	go run ./examples/nft-challenge -participants 3 -name diploma -symbol GRAD
//
// Operator credentials are read from HEDERA_ACCOUNT_ID and HEDERA_PRIVATE_KEY
// (or ACCOUNT_ID and ACCOUNT_DER_PRIVATE_KEY), from the environment or the
// nearest .env file.
package nft_challenge_go
