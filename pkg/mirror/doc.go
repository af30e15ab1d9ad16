// Package mirror is a small client for the Hedera mirror node REST API. It
// covers the lookups needed to confirm the outcome of an issuance run: the
// token definition and the NFTs an account holds.
package mirror
