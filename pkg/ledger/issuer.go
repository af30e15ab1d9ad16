package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// transactionIDReuseWindow keeps a reused ID well inside the network's
// 120 second transaction validity.
const transactionIDReuseWindow = 90 * time.Second

// Issuer mints batches of one token class. A batch rejected at precheck is
// resubmitted under the same transaction ID, so if an earlier submission did
// reach consensus the network answers DUPLICATE_TRANSACTION and the original
// receipt is used instead of minting twice.
type Issuer struct {
	client    *Client
	supplyKey hedera.PrivateKey
	memo      string
	now       func() time.Time

	submit     func(*hedera.TokenMintTransaction) (hedera.TransactionResponse, error)
	receiptOf  func(hedera.TransactionResponse) (hedera.TransactionReceipt, error)
	receiptFor func(hedera.TransactionID) (hedera.TransactionReceipt, error)

	mu      sync.Mutex
	pending map[int]hedera.TransactionID
}

func newIssuer(client *Client, supplyKey hedera.PrivateKey, memo string) *Issuer {
	return &Issuer{
		client:    client,
		supplyKey: supplyKey,
		memo:      memo,
		now:       time.Now,
		submit: func(transaction *hedera.TokenMintTransaction) (hedera.TransactionResponse, error) {
			return transaction.Execute(client.hederaClient)
		},
		receiptOf: func(response hedera.TransactionResponse) (hedera.TransactionReceipt, error) {
			return response.GetReceipt(client.hederaClient)
		},
		receiptFor: func(transactionID hedera.TransactionID) (hedera.TransactionReceipt, error) {
			return hedera.NewTransactionReceiptQuery().
				SetTransactionID(transactionID).
				Execute(client.hederaClient)
		},
		pending: map[int]hedera.TransactionID{},
	}
}

func (i *Issuer) Issue(ctx context.Context, classID string, batch minting.Batch) (minting.IssueResult, error) {
	_ = ctx

	transaction, err := BuildMintTx(classID, batch.Payloads, i.memo)
	if err != nil {
		return minting.IssueResult{}, err
	}

	transactionID := i.transactionIDFor(batch.Start)
	transaction.
		SetTransactionID(transactionID).
		SetMaxTransactionFee(i.client.maxTransactionFee)

	frozen, err := transaction.FreezeWith(i.client.hederaClient)
	if err != nil {
		i.release(batch.Start)
		return minting.IssueResult{}, fmt.Errorf("failed to freeze mint transaction: %w", err)
	}

	i.client.logger.Debug().
		Str("token", classID).
		Str("transaction", transactionID.String()).
		Int("size", batch.Size()).
		Msg("submitting mint")

	response, err := i.submit(frozen.Sign(i.supplyKey))
	if err != nil {
		if isDuplicate(err) {
			return i.resolveDuplicate(batch.Start, transactionID)
		}
		err = classify(err)
		if !IsTransient(err) {
			i.release(batch.Start)
		}
		return minting.IssueResult{}, fmt.Errorf("failed to execute mint transaction: %w", err)
	}

	// Past precheck the ID is spent whatever the receipt says.
	i.release(batch.Start)
	receipt, err := i.receiptOf(response)
	if err != nil {
		return minting.IssueResult{}, fmt.Errorf("failed to retrieve mint receipt: %w", classify(err))
	}
	if err := checkReceipt("mint", receipt); err != nil {
		return minting.IssueResult{}, err
	}

	return minting.IssueResult{
		Serials:       receipt.SerialNumbers,
		TransactionID: response.TransactionID.String(),
	}, nil
}

// resolveDuplicate fetches the receipt of a submission the network already holds.
func (i *Issuer) resolveDuplicate(start int, transactionID hedera.TransactionID) (minting.IssueResult, error) {
	i.release(start)
	i.client.logger.Warn().
		Str("transaction", transactionID.String()).
		Msg("mint already submitted, fetching original receipt")

	receipt, err := i.receiptFor(transactionID)
	if err != nil {
		return minting.IssueResult{}, fmt.Errorf("failed to retrieve receipt of duplicate mint: %w", classify(err))
	}
	if err := checkReceipt("mint", receipt); err != nil {
		return minting.IssueResult{}, err
	}

	return minting.IssueResult{
		Serials:       receipt.SerialNumbers,
		TransactionID: transactionID.String(),
	}, nil
}

func (i *Issuer) transactionIDFor(start int) hedera.TransactionID {
	i.mu.Lock()
	defer i.mu.Unlock()

	if existing, ok := i.pending[start]; ok && existing.ValidStart != nil &&
		i.now().Sub(*existing.ValidStart) < transactionIDReuseWindow {
		return existing
	}

	transactionID := hedera.TransactionIDGenerate(i.client.operator.AccountID)
	i.pending[start] = transactionID
	return transactionID
}

func (i *Issuer) release(start int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.pending, start)
}
