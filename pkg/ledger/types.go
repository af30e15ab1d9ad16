package ledger

import hedera "github.com/hashgraph/hedera-sdk-go/v2"

const (
	// MaxMintBatchSize is the number of metadata entries the network
	// accepts in one mint transaction.
	MaxMintBatchSize = 10

	DefaultMaxTransactionFeeHbar = 20
)

type ClientConfig struct {
	OperatorAccountID     string
	OperatorPrivateKey    string
	Network               string
	MirrorBaseURL         string
	MirrorAPIKey          string
	MaxTransactionFeeHbar float64
}

type AccountCreateTxParams struct {
	PublicKey                     hedera.PublicKey
	InitialBalanceHbar            float64
	MaxAutomaticTokenAssociations *int32
	AccountMemo                   string
	TransactionMemo               string
}

type TokenCreateTxParams struct {
	Name              string
	Symbol            string
	Memo              string
	TreasuryAccountID string
	SupplyKey         hedera.PublicKey
	MaxSupply         int64
	TransactionMemo   string
}
