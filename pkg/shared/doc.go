// Package shared provides the plumbing every other package in this module
// relies on: network normalization, operator credentials loaded from the
// environment or a .env file, Hedera client construction, key parsing and
// logger construction.
//
// # Environment Variables
//
// The operator account is read from HEDERA_ACCOUNT_ID (or ACCOUNT_ID,
// OPERATOR_ID) and its key from HEDERA_PRIVATE_KEY (or
// ACCOUNT_DER_PRIVATE_KEY, OPERATOR_KEY). Network-scoped variants such as
// TESTNET_HEDERA_ACCOUNT_ID take precedence for the selected network.
// HEDERA_NETWORK selects mainnet, testnet or previewnet and defaults to
// testnet. LOG_LEVEL controls the console logger.
package shared
