package minting

import "context"

const (
	DefaultBatchSize         = 10
	DefaultMaxAttempts       = 5
	DefaultMaxStalledBatches = 3
)

// Issuer submits one batch of payloads against an NFT class and reports the
// serials the ledger assigned. Errors matching ErrTransientContention are
// retried; every other error is fatal.
type Issuer interface {
	Issue(ctx context.Context, classID string, batch Batch) (IssueResult, error)
}

// Batch is one mint submission. Start is the number of items issued before
// the batch, so its serials are Start+1 through Start+len(Payloads).
type Batch struct {
	Start    int
	Payloads [][]byte
}

// Size returns the number of items in the batch.
func (b Batch) Size() int {
	return len(b.Payloads)
}

// End returns the counter value after the batch has been issued.
func (b Batch) End() int {
	return b.Start + len(b.Payloads)
}

// Serials returns the serials the batch is expected to receive.
func (b Batch) Serials() []int64 {
	serials := make([]int64, 0, len(b.Payloads))
	for index := range b.Payloads {
		serials = append(serials, int64(b.Start+index+1))
	}
	return serials
}

type IssueResult struct {
	Serials       []int64
	TransactionID string
}

// Result summarizes a completed or aborted run.
type Result struct {
	Minted   int
	Batches  int
	Attempts int
	Stalled  int
}
