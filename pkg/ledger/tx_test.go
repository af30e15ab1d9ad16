package ledger

import (
	"fmt"
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

func TestBuildAccountCreateTx(t *testing.T) {
	key, _ := hedera.PrivateKeyGenerateEd25519()
	transaction, err := BuildAccountCreateTx(AccountCreateTxParams{
		PublicKey:          key.PublicKey(),
		InitialBalanceHbar: 10,
		TransactionMemo:    "nft-challenge:run:treasury",
	})
	if err != nil {
		t.Fatalf("BuildAccountCreateTx failed: %v", err)
	}
	if transaction.GetInitialBalance().String() != hedera.NewHbar(10).String() {
		t.Fatalf("unexpected initial balance: %s", transaction.GetInitialBalance().String())
	}
	if transaction.GetTransactionMemo() != "nft-challenge:run:treasury" {
		t.Fatalf("unexpected memo: %s", transaction.GetTransactionMemo())
	}
}

func TestBuildAccountCreateTxRequiresKey(t *testing.T) {
	if _, err := BuildAccountCreateTx(AccountCreateTxParams{}); err == nil {
		t.Fatal("expected error for missing public key")
	}
}

func TestBuildTokenCreateTx(t *testing.T) {
	supplyKey, _ := hedera.PrivateKeyGenerateEd25519()
	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              "diploma",
		Symbol:            "GRAD",
		TreasuryAccountID: "0.0.900",
		SupplyKey:         supplyKey.PublicKey(),
		MaxSupply:         250,
	})
	if err != nil {
		t.Fatalf("BuildTokenCreateTx failed: %v", err)
	}
	if transaction.GetTokenName() != "diploma" || transaction.GetTokenSymbol() != "GRAD" {
		t.Fatalf("unexpected name/symbol: %s/%s", transaction.GetTokenName(), transaction.GetTokenSymbol())
	}
	if transaction.GetTokenType() != hedera.TokenTypeNonFungibleUnique {
		t.Fatal("expected non-fungible token type")
	}
	if transaction.GetSupplyType() != hedera.TokenSupplyTypeFinite || transaction.GetMaxSupply() != 250 {
		t.Fatalf("expected finite supply of 250, got %d", transaction.GetMaxSupply())
	}
	if transaction.GetTreasuryAccountID().String() != "0.0.900" {
		t.Fatalf("unexpected treasury: %s", transaction.GetTreasuryAccountID().String())
	}
}

func TestBuildTokenCreateTxValidation(t *testing.T) {
	supplyKey, _ := hedera.PrivateKeyGenerateEd25519()
	valid := TokenCreateTxParams{
		Name:              "diploma",
		Symbol:            "GRAD",
		TreasuryAccountID: "0.0.900",
		SupplyKey:         supplyKey.PublicKey(),
		MaxSupply:         250,
	}

	cases := map[string]func(*TokenCreateTxParams){
		"name":       func(p *TokenCreateTxParams) { p.Name = " " },
		"symbol":     func(p *TokenCreateTxParams) { p.Symbol = "" },
		"max supply": func(p *TokenCreateTxParams) { p.MaxSupply = 0 },
		"supply key": func(p *TokenCreateTxParams) { p.SupplyKey = hedera.PublicKey{} },
		"treasury":   func(p *TokenCreateTxParams) { p.TreasuryAccountID = "treasury" },
	}
	for name, mutate := range cases {
		params := valid
		mutate(&params)
		if _, err := BuildTokenCreateTx(params); err == nil {
			t.Fatalf("expected error for invalid %s", name)
		}
	}
}

func TestBuildMintTx(t *testing.T) {
	payloads := [][]byte{[]byte("diploma 1"), []byte("diploma 2")}
	transaction, err := BuildMintTx("0.0.4321", payloads, "mint test")
	if err != nil {
		t.Fatalf("BuildMintTx failed: %v", err)
	}
	if transaction.GetTokenID().String() != "0.0.4321" {
		t.Fatalf("unexpected token ID: %s", transaction.GetTokenID().String())
	}
	if transaction.GetTransactionMemo() != "mint test" {
		t.Fatalf("unexpected transaction memo: %s", transaction.GetTransactionMemo())
	}
	metadata := transaction.GetMetadatas()
	if len(metadata) != 2 || string(metadata[1]) != "diploma 2" {
		t.Fatalf("unexpected metadata: %q", metadata)
	}
}

func TestBuildMintTxValidation(t *testing.T) {
	oversized := make([][]byte, 0, MaxMintBatchSize+1)
	for index := 0; index <= MaxMintBatchSize; index++ {
		oversized = append(oversized, []byte(fmt.Sprintf("x %d", index)))
	}

	if _, err := BuildMintTx("", [][]byte{[]byte("a")}, ""); err == nil {
		t.Fatal("expected missing token ID error")
	}
	if _, err := BuildMintTx("invalid-token", [][]byte{[]byte("a")}, ""); err == nil {
		t.Fatal("expected invalid token ID error")
	}
	if _, err := BuildMintTx("0.0.1", nil, ""); err == nil {
		t.Fatal("expected empty batch error")
	}
	if _, err := BuildMintTx("0.0.1", oversized, ""); err == nil {
		t.Fatal("expected oversized batch error")
	}
}

func TestBuildAssociateTx(t *testing.T) {
	transaction, err := BuildAssociateTx("0.0.77", "0.0.500", "associate")
	if err != nil {
		t.Fatalf("BuildAssociateTx failed: %v", err)
	}
	if transaction.GetAccountID().String() != "0.0.77" {
		t.Fatalf("unexpected account: %s", transaction.GetAccountID().String())
	}
	tokenIDs := transaction.GetTokenIDs()
	if len(tokenIDs) != 1 || tokenIDs[0].String() != "0.0.500" {
		t.Fatalf("unexpected token IDs: %v", tokenIDs)
	}

	if _, err := BuildAssociateTx("", "0.0.500", ""); err == nil {
		t.Fatal("expected missing account error")
	}
	if _, err := BuildAssociateTx("0.0.77", "bad", ""); err == nil {
		t.Fatal("expected invalid token error")
	}
}

func TestBuildNftTransferTx(t *testing.T) {
	transaction, err := BuildNftTransferTx("0.0.500", 2, "0.0.900", "0.0.77", "transfer")
	if err != nil {
		t.Fatalf("BuildNftTransferTx failed: %v", err)
	}
	transfers := transaction.GetNftTransfers()
	if len(transfers) != 1 {
		t.Fatalf("expected transfers of one token, got %d", len(transfers))
	}
	for tokenID, moves := range transfers {
		if tokenID.String() != "0.0.500" {
			t.Fatalf("unexpected token: %s", tokenID.String())
		}
		if len(moves) != 1 {
			t.Fatalf("expected one nft transfer, got %d", len(moves))
		}
		if moves[0].SerialNumber != 2 ||
			moves[0].SenderAccountID.String() != "0.0.900" ||
			moves[0].ReceiverAccountID.String() != "0.0.77" {
			t.Fatalf("unexpected transfer: %+v", moves[0])
		}
	}
}

func TestBuildNftTransferTxValidation(t *testing.T) {
	cases := []struct {
		token  string
		serial int64
		from   string
		to     string
	}{
		{"", 1, "0.0.1", "0.0.2"},
		{"0.0.500", 0, "0.0.1", "0.0.2"},
		{"0.0.500", 1, "", "0.0.2"},
		{"0.0.500", 1, "0.0.1", "nope"},
		{"0.0.500", 1, "0.0.1", "0.0.1"},
	}
	for _, tc := range cases {
		if _, err := BuildNftTransferTx(tc.token, tc.serial, tc.from, tc.to, ""); err == nil {
			t.Fatalf("expected error for %+v", tc)
		}
	}
}
