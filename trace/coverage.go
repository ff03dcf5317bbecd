package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/n-stott/x64emulator/decode"
)

// AddressEntry is per-address execution coverage, mirroring vm/coverage.go's
// CoverageEntry.
type AddressEntry struct {
	Address        uint64
	ExecutionCount uint64
	FirstExecution uint64
	LastExecution  uint64
}

// Coverage tracks which addresses and which mnemonics have been executed.
// vm/coverage.go derives a percentage from (codeEnd-codeStart)/4, relying
// on ARM's fixed 4-byte instruction stride; x86-64 has no such stride, so
// this tracker reports coverage over the fixed, enumerable Mnemonic space
// instead of a byte range — "how many of the roughly 190 instruction
// forms this core knows about have actually been exercised" is the
// meaningful completeness question here.
type Coverage struct {
	Enabled bool
	Writer  io.Writer

	byAddress  map[uint64]*AddressEntry
	byMnemonic map[decode.Mnemonic]uint64

	symbols         map[string]uint64
	addressToSymbol map[uint64]string
}

func NewCoverage(w io.Writer) *Coverage {
	return &Coverage{
		Enabled:         true,
		Writer:          w,
		byAddress:       make(map[uint64]*AddressEntry),
		byMnemonic:      make(map[decode.Mnemonic]uint64),
		symbols:         make(map[string]uint64),
		addressToSymbol: make(map[uint64]string),
	}
}

// LoadSymbols loads address->name labels used to annotate the report.
func (c *Coverage) LoadSymbols(symbols map[string]uint64) {
	c.symbols = symbols
	for name, addr := range symbols {
		c.addressToSymbol[addr] = name
	}
}

func (c *Coverage) Start() {
	c.byAddress = make(map[uint64]*AddressEntry)
	c.byMnemonic = make(map[decode.Mnemonic]uint64)
}

// RecordExecution records one execution of the instruction at address.
func (c *Coverage) RecordExecution(address uint64, mnemonic decode.Mnemonic, cycle uint64) {
	if !c.Enabled {
		return
	}

	if entry, exists := c.byAddress[address]; exists {
		entry.ExecutionCount++
		entry.LastExecution = cycle
	} else {
		c.byAddress[address] = &AddressEntry{
			Address: address, ExecutionCount: 1, FirstExecution: cycle, LastExecution: cycle,
		}
	}
	c.byMnemonic[mnemonic]++
}

// MnemonicCoverage returns the fraction of known mnemonics that have been
// executed at least once.
func (c *Coverage) MnemonicCoverage() float64 {
	if decode.NumMnemonics == 0 {
		return 0
	}
	return float64(len(c.byMnemonic)) / float64(decode.NumMnemonics) * 100.0
}

func (c *Coverage) GetExecutedAddresses() []uint64 {
	addresses := make([]uint64, 0, len(c.byAddress))
	for addr := range c.byAddress {
		addresses = append(addresses, addr)
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i] < addresses[j] })
	return addresses
}

func (c *Coverage) GetUnexecutedMnemonics() []decode.Mnemonic {
	unexecuted := make([]decode.Mnemonic, 0)
	for m := decode.Mnemonic(0); m < decode.NumMnemonics; m++ {
		if _, ok := c.byMnemonic[m]; !ok {
			unexecuted = append(unexecuted, m)
		}
	}
	return unexecuted
}

func (c *Coverage) GetEntry(address uint64) *AddressEntry {
	return c.byAddress[address]
}

// Flush writes a coverage report: mnemonic coverage, address hit counts,
// and the list of never-executed mnemonics.
func (c *Coverage) Flush() error {
	if c.Writer == nil {
		return nil
	}

	header := "Instruction Coverage Report\n"
	header += "===========================\n\n"
	header += fmt.Sprintf("Mnemonic Coverage:    %.2f%% (%d/%d)\n", c.MnemonicCoverage(), len(c.byMnemonic), decode.NumMnemonics)
	header += fmt.Sprintf("Unique Addresses Hit: %d\n\n", len(c.byAddress))
	if _, err := c.Writer.Write([]byte(header)); err != nil {
		return err
	}

	if _, err := c.Writer.Write([]byte("Executed Addresses:\n-------------------\n")); err != nil {
		return err
	}
	for _, addr := range c.GetExecutedAddresses() {
		entry := c.byAddress[addr]
		line := fmt.Sprintf("%#016x: executed %6d times (first: cycle %6d, last: cycle %6d)",
			addr, entry.ExecutionCount, entry.FirstExecution, entry.LastExecution)
		if symbol, ok := c.addressToSymbol[addr]; ok {
			line += fmt.Sprintf(" [%s]", symbol)
		}
		line += "\n"
		if _, err := c.Writer.Write([]byte(line)); err != nil {
			return err
		}
	}

	unexecuted := c.GetUnexecutedMnemonics()
	if len(unexecuted) > 0 {
		if _, err := c.Writer.Write([]byte("\nNever Executed Mnemonics:\n--------------------------\n")); err != nil {
			return err
		}
		for _, m := range unexecuted {
			if _, err := c.Writer.Write([]byte(fmt.Sprintf("%v\n", m))); err != nil {
				return err
			}
		}
	}

	return nil
}

// ExportJSON exports coverage data as JSON.
func (c *Coverage) ExportJSON(w io.Writer) error {
	data := map[string]interface{}{
		"mnemonic_coverage_percent": c.MnemonicCoverage(),
		"mnemonics_hit":             len(c.byMnemonic),
		"mnemonics_total":           int(decode.NumMnemonics),
		"unique_addresses_hit":      len(c.byAddress),
		"executed_addresses":       c.byAddress,
		"unexecuted_mnemonics":      c.GetUnexecutedMnemonics(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (c *Coverage) String() string {
	var sb strings.Builder
	sb.WriteString("Instruction Coverage Summary\n")
	sb.WriteString("=============================\n\n")
	sb.WriteString(fmt.Sprintf("Mnemonic Coverage:    %.2f%% (%d/%d)\n", c.MnemonicCoverage(), len(c.byMnemonic), decode.NumMnemonics))
	sb.WriteString(fmt.Sprintf("Unique Addresses Hit: %d\n", len(c.byAddress)))
	return sb.String()
}
