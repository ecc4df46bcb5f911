package types

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// ShareAssetPrefix marks every pool-share asset id. NewTradingPair
	// rejects ids carrying it, so no pair can hold pool shares.
	ShareAssetPrefix = "dexshare/"
)
