package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/bholdus-chain/dex/x/dex"
	"github.com/bholdus-chain/dex/x/ledger"
)

// GenesisState represents the genesis state of the application, keyed by
// module name.
type GenesisState map[string]json.RawMessage

// GenesisDoc is the genesis file the daemon starts from.
type GenesisDoc struct {
	ChainID  string       `json:"chain_id"`
	AppState GenesisState `json:"app_state"`
}

// ModuleBasics lists the modules in genesis order. The ledger goes first so
// initial liquidity can draw on genesis balances.
var ModuleBasics = []ModuleBasic{
	ledger.AppModule{},
	dex.AppModule{},
}

// NewDefaultGenesisState generates the default genesis state.
func NewDefaultGenesisState() GenesisState {
	genesis := make(GenesisState, len(ModuleBasics))
	for _, m := range ModuleBasics {
		genesis[m.Name()] = m.DefaultGenesis()
	}
	return genesis
}

// ValidateGenesis validates every module's section and rejects sections no
// module owns.
func ValidateGenesis(gs GenesisState) error {
	known := make(map[string]struct{}, len(ModuleBasics))
	for _, m := range ModuleBasics {
		known[m.Name()] = struct{}{}
		bz, ok := gs[m.Name()]
		if !ok {
			return fmt.Errorf("genesis is missing the %s module", m.Name())
		}
		if err := m.ValidateGenesis(bz); err != nil {
			return fmt.Errorf("%s genesis: %w", m.Name(), err)
		}
	}

	var unknown []string
	for name := range gs {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("genesis has unknown modules %v", unknown)
	}
	return nil
}

// Validate checks the chain id and the app state.
func (d GenesisDoc) Validate() error {
	if d.ChainID == "" {
		return fmt.Errorf("genesis chain_id is empty")
	}
	return ValidateGenesis(d.AppState)
}

// DefaultGenesisDoc returns a genesis document with default module state.
func DefaultGenesisDoc(chainID string) GenesisDoc {
	return GenesisDoc{ChainID: chainID, AppState: NewDefaultGenesisState()}
}

// ReadGenesisDoc loads and validates a genesis file.
func ReadGenesisDoc(path string) (GenesisDoc, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return GenesisDoc{}, fmt.Errorf("failed to read genesis file: %w", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return GenesisDoc{}, fmt.Errorf("failed to parse genesis file %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return GenesisDoc{}, err
	}
	return doc, nil
}

// MarshalIndent renders the document the way it is written to disk.
func (d GenesisDoc) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
