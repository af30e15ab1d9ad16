package minting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

type Minter struct {
	issuer            Issuer
	batchSize         int
	maxAttempts       int
	maxStalledBatches int
	logger            zerolog.Logger
}

// Config tunes a Minter. Non-positive limits fall back to the defaults and
// the zero Logger discards output.
type Config struct {
	BatchSize         int
	MaxAttempts       int
	MaxStalledBatches int
	Logger            zerolog.Logger
}

func New(issuer Issuer, config Config) *Minter {
	minter := &Minter{
		issuer:            issuer,
		batchSize:         DefaultBatchSize,
		maxAttempts:       DefaultMaxAttempts,
		maxStalledBatches: DefaultMaxStalledBatches,
		logger:            config.Logger,
	}
	if config.BatchSize > 0 {
		minter.batchSize = config.BatchSize
	}
	// MaxAttempts counts the first submission.
	if config.MaxAttempts > 0 {
		minter.maxAttempts = config.MaxAttempts
	}
	if config.MaxStalledBatches > 0 {
		minter.maxStalledBatches = config.MaxStalledBatches
	}
	return minter
}

func (m *Minter) BatchSize() int {
	return m.batchSize
}

// Mint issues exactly quota items of classID. It returns once the counter
// reaches quota or with a *FatalIssuanceError; the returned Result reflects
// the progress made either way.
func (m *Minter) Mint(ctx context.Context, classID string, label string, quota int) (Result, error) {
	if m.issuer == nil {
		return Result{}, fmt.Errorf("issuer is required")
	}
	if strings.TrimSpace(classID) == "" {
		return Result{}, fmt.Errorf("class ID is required")
	}
	if quota <= 0 {
		return Result{}, fmt.Errorf("quota must be positive, got %d", quota)
	}

	var result Result
	stalled := 0
	for result.Minted < quota {
		batch := PlanBatch(label, result.Minted, quota, m.batchSize)
		next, attempts, err := m.mintBatch(ctx, classID, batch)
		result.Attempts += attempts
		if err != nil {
			return result, err
		}

		if next == result.Minted {
			result.Stalled++
			stalled++
			if stalled >= m.maxStalledBatches {
				return result, &FatalIssuanceError{
					Start:    batch.Start,
					Attempts: attempts,
					Cause:    ErrRetriesExhausted,
				}
			}
			continue
		}

		stalled = 0
		result.Minted = next
		result.Batches++
		m.logger.Info().
			Str("class", classID).
			Int("minted", result.Minted).
			Int("quota", quota).
			Msg("batch minted")
	}

	return result, nil
}

// MintBatch submits a single batch with bounded retry. It returns the
// counter after the batch on success, batch.Start with a nil error when
// every attempt hit transient contention, and a *FatalIssuanceError
// otherwise.
func (m *Minter) MintBatch(ctx context.Context, classID string, batch Batch) (int, error) {
	next, _, err := m.mintBatch(ctx, classID, batch)
	return next, err
}

func (m *Minter) mintBatch(ctx context.Context, classID string, batch Batch) (int, int, error) {
	if batch.Size() == 0 {
		return batch.Start, 0, nil
	}

	attempts := 0
	var issued IssueResult
	operation := func() error {
		attempts++
		m.logger.Debug().
			Str("class", classID).
			Int("start", batch.Start).
			Int("size", batch.Size()).
			Int("attempt", attempts).
			Msg("submitting batch")

		result, err := m.issuer.Issue(ctx, classID, batch)
		if err != nil {
			if errors.Is(err, ErrTransientContention) {
				return err
			}
			return backoff.Permanent(err)
		}
		issued = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(m.maxAttempts-1)),
		ctx,
	)
	notify := func(err error, _ time.Duration) {
		m.logger.Warn().
			Err(err).
			Int("start", batch.Start).
			Int("attempt", attempts).
			Int("max_attempts", m.maxAttempts).
			Msg("network busy, retrying batch")
	}

	err := backoff.RetryNotify(operation, policy, notify)
	switch {
	case err == nil:
	case errors.Is(err, ErrTransientContention):
		m.logger.Warn().
			Int("start", batch.Start).
			Int("attempts", attempts).
			Msg("batch attempts exhausted")
		return batch.Start, attempts, nil
	default:
		return batch.Start, attempts, &FatalIssuanceError{Start: batch.Start, Attempts: attempts, Cause: err}
	}

	if err := checkSerials(batch, issued.Serials); err != nil {
		return batch.Start, attempts, &FatalIssuanceError{Start: batch.Start, Attempts: attempts, Cause: err}
	}
	return batch.End(), attempts, nil
}

func checkSerials(batch Batch, serials []int64) error {
	expected := batch.Serials()
	if len(serials) != len(expected) {
		return fmt.Errorf("%w: expected %d serials, got %d", ErrSerialMismatch, len(expected), len(serials))
	}
	for index, serial := range serials {
		if serial != expected[index] {
			return fmt.Errorf("%w: expected serial %d, got %d", ErrSerialMismatch, expected[index], serial)
		}
	}
	return nil
}
