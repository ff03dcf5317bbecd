package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/n-stott/x64emulator/decode"
)

func TestCoverageRecordExecutionAccumulates(t *testing.T) {
	var buf bytes.Buffer
	cov := NewCoverage(&buf)
	cov.RecordExecution(0x1000, decode.ADD, 1)
	cov.RecordExecution(0x1000, decode.ADD, 2)
	cov.RecordExecution(0x1004, decode.SUB, 3)

	entry := cov.GetEntry(0x1000)
	if entry == nil {
		t.Fatal("GetEntry(0x1000) = nil")
	}
	if entry.ExecutionCount != 2 {
		t.Errorf("ExecutionCount = %d, want 2", entry.ExecutionCount)
	}
	if entry.FirstExecution != 1 || entry.LastExecution != 2 {
		t.Errorf("FirstExecution/LastExecution = %d/%d, want 1/2", entry.FirstExecution, entry.LastExecution)
	}

	addrs := cov.GetExecutedAddresses()
	if len(addrs) != 2 || addrs[0] != 0x1000 || addrs[1] != 0x1004 {
		t.Errorf("GetExecutedAddresses() = %v, want [0x1000 0x1004] sorted", addrs)
	}
}

func TestCoverageMnemonicCoverage(t *testing.T) {
	cov := NewCoverage(nil)
	cov.RecordExecution(0x1000, decode.ADD, 1)
	got := cov.MnemonicCoverage()
	want := 1.0 / float64(decode.NumMnemonics) * 100.0
	if got != want {
		t.Errorf("MnemonicCoverage() = %v, want %v", got, want)
	}

	unexecuted := cov.GetUnexecutedMnemonics()
	for _, m := range unexecuted {
		if m == decode.ADD {
			t.Error("ADD was executed; should not appear in GetUnexecutedMnemonics")
		}
	}
	if len(unexecuted) != int(decode.NumMnemonics)-1 {
		t.Errorf("len(unexecuted) = %d, want %d", len(unexecuted), int(decode.NumMnemonics)-1)
	}
}

func TestCoverageDisabledIgnoresRecordExecution(t *testing.T) {
	cov := NewCoverage(nil)
	cov.Enabled = false
	cov.RecordExecution(0x1000, decode.ADD, 1)
	if cov.GetEntry(0x1000) != nil {
		t.Error("disabled Coverage should not record executions")
	}
}

func TestCoverageFlushIncludesSymbolAndUnexecuted(t *testing.T) {
	var buf bytes.Buffer
	cov := NewCoverage(&buf)
	cov.LoadSymbols(map[string]uint64{"main": 0x1000})
	cov.RecordExecution(0x1000, decode.ADD, 1)
	if err := cov.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[main]") {
		t.Errorf("flushed report should annotate 0x1000 with its symbol: %q", out)
	}
	if !strings.Contains(out, "Never Executed Mnemonics") {
		t.Error("flushed report should list never-executed mnemonics since not all were hit")
	}
}
