// Package minting issues a fixed quantity of serially numbered NFTs in
// fixed-size batches.
//
// A Minter submits each batch through an Issuer. A batch whose submission
// fails with ErrTransientContention is retried immediately, up to a bounded
// number of attempts, without advancing the running counter. Any other
// failure aborts the run with a *FatalIssuanceError. When several
// consecutive batches exhaust their attempts without progress the run is
// abandoned with ErrRetriesExhausted rather than spinning forever.
//
// Serials are 1-based and contiguous within a run, and the payload of the
// item with serial s is "<label> <s>".
package minting
