package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/nft-challenge-go/pkg/challenge"
	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	"github.com/hashgraph-online/nft-challenge-go/pkg/mirror"
	"github.com/hashgraph-online/nft-challenge-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/rs/zerolog"
)

type Client struct {
	hederaClient      *hedera.Client
	mirrorClient      *mirror.Client
	operator          shared.Operator
	maxTransactionFee hedera.Hbar
	logger            zerolog.Logger
}

var (
	_ challenge.AccountCapability   = (*Client)(nil)
	_ challenge.ItemClassCapability = (*Client)(nil)
	_ challenge.IssuanceCapability  = (*Client)(nil)
	_ challenge.TransferCapability  = (*Client)(nil)
	_ challenge.HoldingsCapability  = (*Client)(nil)
)

func NewClient(config ClientConfig) (*Client, error) {
	hederaClient, operator, err := shared.NewOperatorClient(shared.OperatorConfig{
		AccountID:  config.OperatorAccountID,
		PrivateKey: config.OperatorPrivateKey,
		Network:    config.Network,
	})
	if err != nil {
		return nil, err
	}

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: operator.Network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, err
	}

	maxFee := config.MaxTransactionFeeHbar
	if maxFee <= 0 {
		maxFee = DefaultMaxTransactionFeeHbar
	}

	return &Client{
		hederaClient:      hederaClient,
		mirrorClient:      mirrorClient,
		operator:          operator,
		maxTransactionFee: hedera.NewHbar(maxFee),
		logger:            zerolog.Nop(),
	}, nil
}

func (c *Client) SetLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) HederaClient() *hedera.Client {
	return c.hederaClient
}

func (c *Client) MirrorClient() *mirror.Client {
	return c.mirrorClient
}

func (c *Client) Operator() shared.Operator {
	return c.operator
}

func (c *Client) Close() error {
	return c.hederaClient.Close()
}

// CreateAccount creates an account controlled by a freshly generated ED25519
// key, funded by the operator.
func (c *Client) CreateAccount(ctx context.Context, request challenge.AccountRequest) (challenge.Identity, error) {
	_ = ctx

	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return challenge.Identity{}, fmt.Errorf("failed to generate ed25519 private key: %w", err)
	}

	transaction, err := BuildAccountCreateTx(AccountCreateTxParams{
		PublicKey:          privateKey.PublicKey(),
		InitialBalanceHbar: request.InitialBalanceHbar,
		TransactionMemo:    request.Memo,
	})
	if err != nil {
		return challenge.Identity{}, err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return challenge.Identity{}, fmt.Errorf("failed to execute account create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return challenge.Identity{}, fmt.Errorf("failed to retrieve account create receipt: %w", err)
	}
	if receipt.AccountID == nil {
		return challenge.Identity{}, fmt.Errorf("account create receipt did not include account ID")
	}

	c.logger.Debug().Str("account", receipt.AccountID.String()).Msg("account created")
	return challenge.Identity{
		AccountID:  receipt.AccountID.String(),
		PrivateKey: privateKey,
	}, nil
}

// RegisterClass creates the NFT token, cosigned by the treasury.
func (c *Client) RegisterClass(ctx context.Context, spec challenge.ClassSpec) (string, error) {
	_ = ctx

	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              spec.Name,
		Symbol:            spec.Symbol,
		TreasuryAccountID: spec.Treasury.AccountID,
		SupplyKey:         spec.SupplyKey,
		MaxSupply:         spec.MaxSupply,
		TransactionMemo:   spec.Memo,
	})
	if err != nil {
		return "", err
	}
	transaction.SetMaxTransactionFee(c.maxTransactionFee)

	frozen, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to freeze token create transaction: %w", err)
	}
	response, err := frozen.Sign(spec.Treasury.PrivateKey).Execute(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to execute token create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token create receipt: %w", err)
	}
	if receipt.TokenID == nil {
		return "", fmt.Errorf("token create receipt did not include token ID")
	}

	return receipt.TokenID.String(), nil
}

// IssuerFor returns an issuer that signs mints with supplyKey.
func (c *Client) IssuerFor(supplyKey hedera.PrivateKey, memo string) minting.Issuer {
	return newIssuer(c, supplyKey, memo)
}

// Associate links account with the token, cosigned by the account.
func (c *Client) Associate(ctx context.Context, account challenge.Identity, classID string, memo string) error {
	_ = ctx

	transaction, err := BuildAssociateTx(account.AccountID, classID, memo)
	if err != nil {
		return err
	}

	frozen, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to freeze token associate transaction: %w", err)
	}
	response, err := frozen.Sign(account.PrivateKey).Execute(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to execute token associate transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to retrieve token associate receipt: %w", err)
	}
	return checkReceipt("token associate", receipt)
}

// Transfer moves one serial from request.From to request.To, cosigned by
// the sender.
func (c *Client) Transfer(ctx context.Context, request challenge.TransferRequest) error {
	_ = ctx

	transaction, err := BuildNftTransferTx(
		request.ClassID,
		request.Serial,
		request.From.AccountID,
		request.To.AccountID,
		request.Memo,
	)
	if err != nil {
		return err
	}

	frozen, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to freeze nft transfer transaction: %w", err)
	}
	response, err := frozen.Sign(request.From.PrivateKey).Execute(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to execute nft transfer transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to retrieve nft transfer receipt: %w", err)
	}
	return checkReceipt("nft transfer", receipt)
}

// Serials reads the serials of classID held by accountID from the mirror
// node.
func (c *Client) Serials(ctx context.Context, accountID string, classID string) ([]int64, error) {
	if strings.TrimSpace(classID) == "" {
		return nil, fmt.Errorf("token ID is required")
	}

	nfts, err := c.mirrorClient.GetAccountNFTs(ctx, accountID, classID)
	if err != nil {
		return nil, err
	}

	serials := make([]int64, 0, len(nfts))
	for _, nft := range nfts {
		if nft.TokenID == classID {
			serials = append(serials, nft.SerialNumber)
		}
	}
	return serials, nil
}
