package types

import (
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenAccount generates a random Host account address. Used by tests across the bridge core
// packages that need a plausible-looking but otherwise meaningless recipient/owner address.
func GenAccount() sdk.AccAddress {
	return sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address())
}
