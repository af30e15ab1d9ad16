package challenge

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashgraph-online/nft-challenge-go/pkg/minting"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/rs/zerolog"
)

type Orchestrator struct {
	caps          Capabilities
	keyGenerator  func() (hedera.PrivateKey, error)
	runIDs        func() string
	verifyBackOff func() backoff.BackOff
	minter        minting.Config
	logger        zerolog.Logger
}

// Config tunes an Orchestrator. Nil generators fall back to ED25519 supply
// keys, random UUID run IDs and a 30 second exponential verify policy. The
// minter inherits the run logger.
type Config struct {
	KeyGenerator   func() (hedera.PrivateKey, error)
	RunIDGenerator func() string
	VerifyBackOff  func() backoff.BackOff
	Minter         minting.Config
	Logger         zerolog.Logger
}

func New(caps Capabilities, config Config) (*Orchestrator, error) {
	if caps.Accounts == nil {
		return nil, fmt.Errorf("account capability is required")
	}
	if caps.Classes == nil {
		return nil, fmt.Errorf("item class capability is required")
	}
	if caps.Issuance == nil {
		return nil, fmt.Errorf("issuance capability is required")
	}
	if caps.Transfers == nil {
		return nil, fmt.Errorf("transfer capability is required")
	}

	orchestrator := &Orchestrator{
		caps:          caps,
		keyGenerator:  config.KeyGenerator,
		runIDs:        config.RunIDGenerator,
		verifyBackOff: config.VerifyBackOff,
		minter:        config.Minter,
		logger:        config.Logger,
	}
	if orchestrator.keyGenerator == nil {
		orchestrator.keyGenerator = hedera.PrivateKeyGenerateEd25519
	}
	if orchestrator.runIDs == nil {
		orchestrator.runIDs = uuid.NewString
	}
	if orchestrator.verifyBackOff == nil {
		orchestrator.verifyBackOff = defaultVerifyBackOff
	}
	return orchestrator, nil
}

func defaultVerifyBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxElapsedTime = 30 * time.Second
	return policy
}

func normalizeRequest(request Request) (Request, error) {
	request.Name = strings.TrimSpace(request.Name)
	request.Symbol = strings.TrimSpace(request.Symbol)

	if request.Participants <= 0 {
		return request, fmt.Errorf("participants must be positive, got %d", request.Participants)
	}
	if request.Name == "" {
		return request, fmt.Errorf("class name is required")
	}
	if request.Symbol == "" {
		return request, fmt.Errorf("class symbol is required")
	}
	if request.MaxSupply <= 0 {
		request.MaxSupply = DefaultMaxSupply
	}
	if request.MaxSupply < int64(request.Participants) {
		return request, fmt.Errorf(
			"max supply %d is below the %d participants",
			request.MaxSupply,
			request.Participants,
		)
	}
	if request.InitialBalanceHbar <= 0 {
		request.InitialBalanceHbar = DefaultInitialBalanceHbar
	}
	return request, nil
}

// Run executes the whole challenge. On error the returned report holds
// everything created before the failure.
func (o *Orchestrator) Run(ctx context.Context, request Request) (Report, error) {
	request, err := normalizeRequest(request)
	if err != nil {
		return Report{}, err
	}

	report := Report{RunID: o.runIDs()}
	logger := o.logger.With().Str("run", report.RunID).Logger()

	treasury, err := o.caps.Accounts.CreateAccount(ctx, AccountRequest{
		InitialBalanceHbar: request.InitialBalanceHbar,
		Memo:               Memo(report.RunID, "treasury"),
	})
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrTreasuryCreation, err)
	}
	if strings.TrimSpace(treasury.AccountID) == "" {
		return report, fmt.Errorf("%w: no account ID returned", ErrTreasuryCreation)
	}
	report.Treasury = treasury
	logger.Info().Str("treasury", treasury.AccountID).Msg("treasury account created")

	supplyKey, err := o.keyGenerator()
	if err != nil {
		return report, fmt.Errorf("failed to generate supply key: %w", err)
	}
	report.SupplyKey = supplyKey

	classID, err := o.caps.Classes.RegisterClass(ctx, ClassSpec{
		Name:      request.Name,
		Symbol:    request.Symbol,
		MaxSupply: request.MaxSupply,
		Treasury:  treasury,
		SupplyKey: supplyKey.PublicKey(),
		Memo:      Memo(report.RunID, "class"),
	})
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrClassRegistration, err)
	}
	if strings.TrimSpace(classID) == "" {
		return report, fmt.Errorf("%w: no class ID returned", ErrClassRegistration)
	}
	report.ClassID = classID
	logger.Info().Str("class", classID).Str("symbol", request.Symbol).Msg("nft class registered")

	issuer := o.caps.Issuance.IssuerFor(supplyKey, Memo(report.RunID, "mint"))
	minterConfig := o.minter
	minterConfig.Logger = logger
	minted, err := minting.New(issuer, minterConfig).Mint(ctx, classID, request.Name, request.Participants)
	report.Mint = minted
	if err != nil {
		return report, err
	}

	for position := 1; position <= request.Participants; position++ {
		participant, err := o.distribute(ctx, report, position, request.InitialBalanceHbar)
		report.Participants = append(report.Participants, participant)
		if err != nil {
			return report, err
		}
	}

	logger.Info().
		Int("delivered", len(report.Delivered())).
		Int("skipped", len(report.Skipped())).
		Msg("distribution complete")
	return report, nil
}

func (o *Orchestrator) distribute(
	ctx context.Context,
	report Report,
	position int,
	initialBalanceHbar float64,
) (Participant, error) {
	participant := Participant{Position: position, Serial: int64(position)}
	logger := o.logger.With().Str("run", report.RunID).Int("participant", position).Logger()

	recipient, err := o.caps.Accounts.CreateAccount(ctx, AccountRequest{
		InitialBalanceHbar: initialBalanceHbar,
		Memo:               Memo(report.RunID, fmt.Sprintf("recipient-%d", position)),
	})
	if err == nil && strings.TrimSpace(recipient.AccountID) == "" {
		err = fmt.Errorf("no account ID returned")
	}
	if err != nil {
		participant.Status = ParticipantSkipped
		participant.Err = fmt.Errorf("%w: %w", ErrIdentityCreation, err)
		logger.Warn().Err(err).Msg("skipping participant")
		return participant, nil
	}
	participant.Identity = &recipient

	if err := o.caps.Transfers.Associate(
		ctx,
		recipient,
		report.ClassID,
		Memo(report.RunID, fmt.Sprintf("associate-%d", position)),
	); err != nil {
		participant.Status = ParticipantFailed
		participant.Err = fmt.Errorf("%w: association of %s: %w", ErrDistribution, recipient.AccountID, err)
		return participant, participant.Err
	}

	if err := o.caps.Transfers.Transfer(ctx, TransferRequest{
		ClassID: report.ClassID,
		Serial:  participant.Serial,
		From:    report.Treasury,
		To:      recipient,
		Memo:    Memo(report.RunID, fmt.Sprintf("transfer-%d", position)),
	}); err != nil {
		participant.Status = ParticipantFailed
		participant.Err = fmt.Errorf("%w: transfer of serial %d to %s: %w", ErrDistribution, participant.Serial, recipient.AccountID, err)
		return participant, participant.Err
	}

	participant.Status = ParticipantDelivered
	logger.Info().
		Str("account", recipient.AccountID).
		Int64("serial", participant.Serial).
		Msg("nft delivered")
	return participant, nil
}

// Verify polls the holdings capability until every delivered participant
// owns exactly its serial and the treasury owns exactly the undelivered
// serials, or the verify back-off gives up.
func (o *Orchestrator) Verify(ctx context.Context, report Report) error {
	if o.caps.Holdings == nil {
		return fmt.Errorf("holdings capability is required for verification")
	}
	if strings.TrimSpace(report.ClassID) == "" {
		return fmt.Errorf("report has no class ID")
	}

	expected := map[string][]int64{report.Treasury.AccountID: report.TreasurySerials()}
	for _, participant := range report.Delivered() {
		expected[participant.Identity.AccountID] = []int64{participant.Serial}
	}

	check := func() error {
		for accountID, want := range expected {
			got, err := o.caps.Holdings.Serials(ctx, accountID, report.ClassID)
			if err != nil {
				return err
			}
			got = slices.Clone(got)
			slices.Sort(got)
			if !slices.Equal(got, want) {
				return fmt.Errorf("%w: account %s holds %v, expected %v", ErrVerification, accountID, got, want)
			}
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		o.logger.Debug().Err(err).Dur("wait", wait).Msg("holdings not settled yet")
	}

	return backoff.RetryNotify(check, backoff.WithContext(o.verifyBackOff(), ctx), notify)
}
