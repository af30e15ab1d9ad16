package mirror

type NFT struct {
	AccountID        string  `json:"account_id"`
	CreatedTimestamp string  `json:"created_timestamp"`
	Deleted          bool    `json:"deleted"`
	Metadata         string  `json:"metadata"`
	SerialNumber     int64   `json:"serial_number"`
	TokenID          string  `json:"token_id"`
	SpenderID        *string `json:"spender,omitempty"`
}

type TokenInfo struct {
	TokenID           string         `json:"token_id"`
	Name              string         `json:"name"`
	Symbol            string         `json:"symbol"`
	Type              string         `json:"type"`
	SupplyType        string         `json:"supply_type"`
	MaxSupply         string         `json:"max_supply"`
	TotalSupply       string         `json:"total_supply"`
	TreasuryAccountID string         `json:"treasury_account_id"`
	Memo              string         `json:"memo"`
	SupplyKey         map[string]any `json:"supply_key"`
}

type nftsResponse struct {
	NFTs  []NFT `json:"nfts"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}
