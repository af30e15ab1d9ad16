package ledger

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// BuildAccountCreateTx builds an account creation keyed to params.PublicKey.
func BuildAccountCreateTx(params AccountCreateTxParams) (*hedera.AccountCreateTransaction, error) {
	if params.PublicKey.String() == "" {
		return nil, fmt.Errorf("public key is required")
	}

	initialBalance := params.InitialBalanceHbar
	if initialBalance <= 0 {
		initialBalance = 1
	}

	transaction := hedera.NewAccountCreateTransaction().
		SetKey(params.PublicKey).
		SetInitialBalance(hedera.NewHbar(initialBalance))

	if params.MaxAutomaticTokenAssociations != nil {
		transaction.SetMaxAutomaticTokenAssociations(*params.MaxAutomaticTokenAssociations)
	}
	if memo := strings.TrimSpace(params.AccountMemo); memo != "" {
		transaction.SetAccountMemo(memo)
	}
	if memo := strings.TrimSpace(params.TransactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

// BuildTokenCreateTx builds a finite non-fungible token with no initial
// supply. It must be signed by the treasury before execution.
func BuildTokenCreateTx(params TokenCreateTxParams) (*hedera.TokenCreateTransaction, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("token name is required")
	}
	symbol := strings.TrimSpace(params.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("token symbol is required")
	}
	if params.MaxSupply <= 0 {
		return nil, fmt.Errorf("max supply must be positive")
	}
	if params.SupplyKey.String() == "" {
		return nil, fmt.Errorf("supply key is required")
	}
	treasuryID, err := parseAccountID(params.TreasuryAccountID, "treasury")
	if err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(name).
		SetTokenSymbol(symbol).
		SetTokenType(hedera.TokenTypeNonFungibleUnique).
		SetDecimals(0).
		SetInitialSupply(0).
		SetTreasuryAccountID(treasuryID).
		SetSupplyType(hedera.TokenSupplyTypeFinite).
		SetMaxSupply(params.MaxSupply).
		SetSupplyKey(params.SupplyKey)

	if memo := strings.TrimSpace(params.Memo); memo != "" {
		transaction.SetTokenMemo(memo)
	}
	if memo := strings.TrimSpace(params.TransactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

// BuildMintTx builds a mint of one NFT per payload.
func BuildMintTx(tokenID string, payloads [][]byte, transactionMemo string) (*hedera.TokenMintTransaction, error) {
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("at least one metadata entry is required")
	}
	if len(payloads) > MaxMintBatchSize {
		return nil, fmt.Errorf("a mint may carry at most %d metadata entries, got %d", MaxMintBatchSize, len(payloads))
	}

	transaction := hedera.NewTokenMintTransaction().SetTokenID(parsedTokenID)
	for _, payload := range payloads {
		transaction.SetMetadata(payload)
	}
	if memo := strings.TrimSpace(transactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

// BuildAssociateTx builds an association of accountID with tokenID. It must
// be signed by the account.
func BuildAssociateTx(accountID string, tokenID string, transactionMemo string) (*hedera.TokenAssociateTransaction, error) {
	parsedAccountID, err := parseAccountID(accountID, "account")
	if err != nil {
		return nil, err
	}
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenAssociateTransaction().
		SetAccountID(parsedAccountID).
		SetTokenIDs(parsedTokenID)
	if memo := strings.TrimSpace(transactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

// BuildNftTransferTx builds a transfer of one serial. It must be signed by
// the sender.
func BuildNftTransferTx(
	tokenID string,
	serial int64,
	fromAccountID string,
	toAccountID string,
	transactionMemo string,
) (*hedera.TransferTransaction, error) {
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if serial <= 0 {
		return nil, fmt.Errorf("serial must be positive, got %d", serial)
	}
	from, err := parseAccountID(fromAccountID, "sender")
	if err != nil {
		return nil, err
	}
	to, err := parseAccountID(toAccountID, "receiver")
	if err != nil {
		return nil, err
	}
	if from.String() == to.String() {
		return nil, fmt.Errorf("sender and receiver must differ")
	}

	transaction := hedera.NewTransferTransaction().
		AddNftTransfer(hedera.NftID{TokenID: parsedTokenID, SerialNumber: serial}, from, to)
	if memo := strings.TrimSpace(transactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

func parseTokenID(tokenID string) (hedera.TokenID, error) {
	trimmed := strings.TrimSpace(tokenID)
	if trimmed == "" {
		return hedera.TokenID{}, fmt.Errorf("token ID is required")
	}
	parsed, err := hedera.TokenIDFromString(trimmed)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("invalid token ID: %w", err)
	}
	return parsed, nil
}

func parseAccountID(accountID string, role string) (hedera.AccountID, error) {
	trimmed := strings.TrimSpace(accountID)
	if trimmed == "" {
		return hedera.AccountID{}, fmt.Errorf("%s account ID is required", role)
	}
	parsed, err := hedera.AccountIDFromString(trimmed)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("invalid %s account ID: %w", role, err)
	}
	return parsed, nil
}
