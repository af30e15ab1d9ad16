package challenge

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	DefaultMaxSupply          int64   = 250
	DefaultInitialBalanceHbar float64 = 10
	memoPrefix                        = "nft-challenge"
)

// Identity is a ledger account together with the key that signs for it.
type Identity struct {
	AccountID  string
	PrivateKey hedera.PrivateKey
}

func (i Identity) PublicKey() hedera.PublicKey {
	return i.PrivateKey.PublicKey()
}

type AccountRequest struct {
	InitialBalanceHbar float64
	Memo               string
}

// ClassSpec describes a finite NFT class. Registration is cosigned by the
// treasury.
type ClassSpec struct {
	Name      string
	Symbol    string
	MaxSupply int64
	Treasury  Identity
	SupplyKey hedera.PublicKey
	Memo      string
}

type TransferRequest struct {
	ClassID string
	Serial  int64
	From    Identity
	To      Identity
	Memo    string
}

type AccountCapability interface {
	CreateAccount(ctx context.Context, request AccountRequest) (Identity, error)
}

type ItemClassCapability interface {
	RegisterClass(ctx context.Context, spec ClassSpec) (string, error)
}

// IssuanceCapability binds an issuer to the supply key that authorizes mints.
type IssuanceCapability interface {
	IssuerFor(supplyKey hedera.PrivateKey, memo string) minting.Issuer
}

type TransferCapability interface {
	Associate(ctx context.Context, account Identity, classID string, memo string) error
	Transfer(ctx context.Context, request TransferRequest) error
}

// HoldingsCapability reports the serials of classID owned by an account.
type HoldingsCapability interface {
	Serials(ctx context.Context, accountID string, classID string) ([]int64, error)
}

// Capabilities is everything the orchestrator needs from the ledger.
// Holdings is only required by Verify.
type Capabilities struct {
	Accounts  AccountCapability
	Classes   ItemClassCapability
	Issuance  IssuanceCapability
	Transfers TransferCapability
	Holdings  HoldingsCapability
}

type Request struct {
	Participants       int
	Name               string
	Symbol             string
	MaxSupply          int64
	InitialBalanceHbar float64
}

type ParticipantStatus string

const (
	ParticipantDelivered ParticipantStatus = "delivered"
	ParticipantSkipped   ParticipantStatus = "skipped"
	ParticipantFailed    ParticipantStatus = "failed"
)

// Participant is one entry of the recipient set. Position and Serial are
// 1-based and always equal.
type Participant struct {
	Position int
	Serial   int64
	Identity *Identity
	Status   ParticipantStatus
	Err      error
}

type Report struct {
	RunID        string
	Treasury     Identity
	ClassID      string
	SupplyKey    hedera.PrivateKey
	Mint         minting.Result
	Participants []Participant
}

// Delivered returns the participants that received their item.
func (r Report) Delivered() []Participant {
	return r.filter(ParticipantDelivered)
}

// Skipped returns the participants whose account could not be created.
func (r Report) Skipped() []Participant {
	return r.filter(ParticipantSkipped)
}

func (r Report) filter(status ParticipantStatus) []Participant {
	result := make([]Participant, 0)
	for _, participant := range r.Participants {
		if participant.Status == status {
			result = append(result, participant)
		}
	}
	return result
}

// TreasurySerials returns the minted serials that were not delivered.
func (r Report) TreasurySerials() []int64 {
	delivered := make(map[int64]struct{}, len(r.Participants))
	for _, participant := range r.Delivered() {
		delivered[participant.Serial] = struct{}{}
	}

	serials := make([]int64, 0)
	for serial := int64(1); serial <= int64(r.Mint.Minted); serial++ {
		if _, ok := delivered[serial]; !ok {
			serials = append(serials, serial)
		}
	}
	return serials
}

// Memo builds the transaction memo for a step of a run.
func Memo(runID string, step string) string {
	return fmt.Sprintf("%s:%s:%s", memoPrefix, runID, step)
}
