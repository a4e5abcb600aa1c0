package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper moves collateral between accounts. A transfer is either fully
// applied or returns an error and leaves balances untouched.
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin
}
