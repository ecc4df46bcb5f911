package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc encodes genesis state.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	ModuleCdc.Seal()
}
