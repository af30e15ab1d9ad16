package ledger

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hashgraph-online/nft-challenge-go/pkg/challenge"
	"github.com/hashgraph-online/nft-challenge-go/pkg/shared"
)

func TestLedgerIntegration_RunChallenge(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	operatorConfig, err := shared.OperatorConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if strings.EqualFold(operatorConfig.Network, shared.NetworkMainnet) && os.Getenv("ALLOW_MAINNET_INTEGRATION") != "1" {
		t.Skip("resolved mainnet credentials; set ALLOW_MAINNET_INTEGRATION=1 to allow live mainnet writes")
	}

	client, err := NewClient(ClientConfig{
		OperatorAccountID:  operatorConfig.AccountID,
		OperatorPrivateKey: operatorConfig.PrivateKey,
		Network:            operatorConfig.Network,
	})
	if err != nil {
		t.Fatalf("failed to initialize ledger client: %v", err)
	}
	defer client.Close()

	orchestrator, err := challenge.New(challenge.Capabilities{
		Accounts:  client,
		Classes:   client,
		Issuance:  client,
		Transfers: client,
		Holdings:  client,
	}, challenge.Config{})
	if err != nil {
		t.Fatalf("failed to initialize orchestrator: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := orchestrator.Run(ctx, challenge.Request{
		Participants:       3,
		Name:               "go-nft-challenge",
		Symbol:             "GNC",
		MaxSupply:          10,
		InitialBalanceHbar: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	t.Logf("run %s minted token %s", report.RunID, report.ClassID)

	if len(report.Delivered()) != 3 {
		t.Fatalf("expected 3 deliveries, got %+v", report.Participants)
	}
	if err := orchestrator.Verify(ctx, report); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}
