package ledger

import (
	"errors"
	"fmt"

	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

var transientStatuses = map[hedera.Status]struct{}{
	hedera.StatusBusy:                          {},
	hedera.StatusPlatformTransactionNotCreated: {},
	hedera.StatusPlatformNotActive:             {},
}

// statusOf extracts the precheck or receipt status carried by an SDK error.
func statusOf(err error) (hedera.Status, bool) {
	var precheck hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		return precheck.Status, true
	}
	var receipt hedera.ErrHederaReceiptStatus
	if errors.As(err, &receipt) {
		return receipt.Status, true
	}
	return 0, false
}

// IsTransient reports whether err means the network was too busy to accept
// the transaction.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, minting.ErrTransientContention) {
		return true
	}
	status, ok := statusOf(err)
	if !ok {
		return false
	}
	_, transient := transientStatuses[status]
	return transient
}

// classify marks transient errors with minting.ErrTransientContention and
// returns every other error unchanged.
func classify(err error) error {
	if err == nil || errors.Is(err, minting.ErrTransientContention) {
		return err
	}
	if IsTransient(err) {
		return fmt.Errorf("%w: %w", minting.ErrTransientContention, err)
	}
	return err
}

func isDuplicate(err error) bool {
	status, ok := statusOf(err)
	return ok && status == hedera.StatusDuplicateTransaction
}

func checkReceipt(step string, receipt hedera.TransactionReceipt) error {
	if receipt.Status != hedera.StatusSuccess {
		return classify(fmt.Errorf("%s transaction failed: %w", step, hedera.ErrHederaReceiptStatus{Status: receipt.Status}))
	}
	return nil
}
