package request

// Network -
type Network struct {
	ChainID       uint64 `json:"chainId"`
	BlockExplorer string `json:"blockExplorer"`
}

// Networks - network names accepted in requests
var Networks = map[string]Network{
	"MAINNET":      {ChainID: 1, BlockExplorer: "etherscan.io"},
	"ARBITRUM_ONE": {ChainID: 42161, BlockExplorer: "arbiscan.io"},
	"BASE":         {ChainID: 8453, BlockExplorer: "basescan.org"},
	"AVALANCHE":    {ChainID: 43114, BlockExplorer: "snowscan.xyz"},
	"POLYGON":      {ChainID: 137, BlockExplorer: "polygonscan.com"},
	"BNB":          {ChainID: 56, BlockExplorer: "bscscan.com"},
	"LENS":         {ChainID: 232, BlockExplorer: "explorer.lens.xyz"},
	"GNOSIS":       {ChainID: 100, BlockExplorer: "gnosisscan.io"},
	"LINEA":        {ChainID: 59144, BlockExplorer: "lineascan.build"},
	"PLASMA":       {ChainID: 9745, BlockExplorer: "plasmascan.to"},
}
