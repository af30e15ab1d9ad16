// Package ledger implements the challenge capabilities against a Hedera
// network using the Hedera Go SDK, with holdings read back from the mirror
// node.
//
// Transactions are built by the Build*Tx helpers, frozen with the operator
// client, cosigned by the account the step acts for and executed
// synchronously up to the receipt. Busy and platform-unavailable statuses are
// reported as minting.ErrTransientContention so the batch minter can retry
// them.
package ledger
