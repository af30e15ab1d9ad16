// Package challenge runs an NFT issuance challenge: it creates a treasury
// account, registers a finite NFT class, mints one item per participant and
// hands item N to the Nth participant.
//
// The ledger is reached only through the capability interfaces in this
// package, so the workflow can be exercised against an in-memory network.
// The steps are not transactional; a failed run leaves whatever state it had
// created, and every transaction it submitted carries the run ID in its memo.
//
// A participant whose account cannot be created is skipped. Serials are
// assigned by position, so the skipped participant's serial stays in the
// treasury and nobody else's serial changes.
package challenge
