package challenge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type fakeClass struct {
	spec   ClassSpec
	minted int64
}

// fakeNetwork is an in-memory ledger implementing every capability.
type fakeNetwork struct {
	mu sync.Mutex

	nextEntity   int
	accounts     map[string]Identity
	classes      map[string]*fakeClass
	owners       map[string]map[int64]string
	associations map[string]map[string]bool
	memos        []string

	accountCalls   int
	failAccountAt  map[int]bool
	failClass      error
	failAssociate  error
	busyMints      int
	mintAttempts   int
	transferOrder  []string
	holdingsErrors int
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		nextEntity:    1000,
		accounts:      map[string]Identity{},
		classes:       map[string]*fakeClass{},
		owners:        map[string]map[int64]string{},
		associations:  map[string]map[string]bool{},
		failAccountAt: map[int]bool{},
	}
}

func (f *fakeNetwork) capabilities() Capabilities {
	return Capabilities{
		Accounts:  f,
		Classes:   f,
		Issuance:  f,
		Transfers: f,
		Holdings:  f,
	}
}

func (f *fakeNetwork) entityID() string {
	f.nextEntity++
	return fmt.Sprintf("0.0.%d", f.nextEntity)
}

func (f *fakeNetwork) CreateAccount(_ context.Context, request AccountRequest) (Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accountCalls++
	if f.failAccountAt[f.accountCalls] {
		return Identity{}, errors.New("INSUFFICIENT_PAYER_BALANCE")
	}
	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return Identity{}, err
	}
	identity := Identity{AccountID: f.entityID(), PrivateKey: key}
	f.accounts[identity.AccountID] = identity
	f.memos = append(f.memos, request.Memo)
	return identity, nil
}

func (f *fakeNetwork) RegisterClass(_ context.Context, spec ClassSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClass != nil {
		return "", f.failClass
	}
	if _, ok := f.accounts[spec.Treasury.AccountID]; !ok {
		return "", errors.New("INVALID_TREASURY_ACCOUNT_FOR_TOKEN")
	}
	classID := f.entityID()
	f.classes[classID] = &fakeClass{spec: spec}
	f.owners[classID] = map[int64]string{}
	f.memos = append(f.memos, spec.Memo)
	return classID, nil
}

func (f *fakeNetwork) IssuerFor(supplyKey hedera.PrivateKey, memo string) minting.Issuer {
	return &fakeIssuer{network: f, supplyKey: supplyKey, memo: memo}
}

type fakeIssuer struct {
	network   *fakeNetwork
	supplyKey hedera.PrivateKey
	memo      string
}

func (i *fakeIssuer) Issue(_ context.Context, classID string, batch minting.Batch) (minting.IssueResult, error) {
	f := i.network
	f.mu.Lock()
	defer f.mu.Unlock()

	f.mintAttempts++
	if f.busyMints > 0 {
		f.busyMints--
		return minting.IssueResult{}, fmt.Errorf("BUSY: %w", minting.ErrTransientContention)
	}

	class, ok := f.classes[classID]
	if !ok {
		return minting.IssueResult{}, errors.New("INVALID_TOKEN_ID")
	}
	if class.spec.SupplyKey.String() != i.supplyKey.PublicKey().String() {
		return minting.IssueResult{}, errors.New("INVALID_SIGNATURE")
	}
	if class.minted+int64(batch.Size()) > class.spec.MaxSupply {
		return minting.IssueResult{}, errors.New("TOKEN_MAX_SUPPLY_REACHED")
	}

	serials := make([]int64, 0, batch.Size())
	for range batch.Payloads {
		class.minted++
		f.owners[classID][class.minted] = class.spec.Treasury.AccountID
		serials = append(serials, class.minted)
	}
	f.memos = append(f.memos, i.memo)
	return minting.IssueResult{Serials: serials}, nil
}

func (f *fakeNetwork) Associate(_ context.Context, account Identity, classID string, memo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAssociate != nil {
		return f.failAssociate
	}
	if f.associations[account.AccountID] == nil {
		f.associations[account.AccountID] = map[string]bool{}
	}
	f.associations[account.AccountID][classID] = true
	f.memos = append(f.memos, memo)
	return nil
}

func (f *fakeNetwork) Transfer(_ context.Context, request TransferRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.associations[request.To.AccountID][request.ClassID] {
		return errors.New("TOKEN_NOT_ASSOCIATED_TO_ACCOUNT")
	}
	owner, ok := f.owners[request.ClassID][request.Serial]
	if !ok || owner != request.From.AccountID {
		return errors.New("SENDER_DOES_NOT_OWN_NFT_SERIAL_NO")
	}
	f.owners[request.ClassID][request.Serial] = request.To.AccountID
	f.transferOrder = append(f.transferOrder, fmt.Sprintf("%d->%s", request.Serial, request.To.AccountID))
	f.memos = append(f.memos, request.Memo)
	return nil
}

func (f *fakeNetwork) Serials(_ context.Context, accountID string, classID string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.holdingsErrors > 0 {
		f.holdingsErrors--
		return nil, errors.New("mirror node request failed with status 503")
	}
	serials := make([]int64, 0)
	for serial, owner := range f.owners[classID] {
		if owner == accountID {
			serials = append(serials, serial)
		}
	}
	return serials, nil
}

func (f *fakeNetwork) give(classID string, serial int64, accountID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners[classID][serial] = accountID
}
