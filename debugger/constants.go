package debugger

// TUI Display Update Constants
const (
	// DisplayUpdateFrequency controls how often the TUI display updates during continuous execution
	// (every N cycles to keep display responsive without overwhelming the terminal)
	DisplayUpdateFrequency = 100
)

// Code View Context Constants
const (
	// CodeContextLinesBefore is the default number of lines to show before RIP in the full code view
	CodeContextLinesBefore = 20

	// CodeContextLinesAfter is the default number of lines to show after RIP in the full code view
	CodeContextLinesAfter = 80

	// CodeContextLinesBeforeCompact is the number of lines to show before RIP in compact views
	CodeContextLinesBeforeCompact = 5

	// CodeContextLinesAfterCompact is the number of lines to show after RIP in compact views
	CodeContextLinesAfterCompact = 10
)

// Memory Display Constants
const (
	// MemoryDisplayRows is the number of rows to show in the memory hex dump view
	MemoryDisplayRows = 16

	// MemoryDisplayColumns is the number of bytes per row in the memory hex dump view
	MemoryDisplayColumns = 16

	// MemoryDisplayBytesPerRow is the number of bytes displayed per row (same as columns)
	MemoryDisplayBytesPerRow = 16
)

// Stack Display Constants
const (
	// StackDisplayWords is the number of 64-bit quadwords to show in the stack view
	StackDisplayWords = 16

	// StackDisplayBytes is the total number of bytes shown in the stack view (16 quadwords * 8 bytes)
	StackDisplayBytes = 128

	// StackInspectionMaxOffset is the maximum byte offset when inspecting stack in debugger commands
	StackInspectionMaxOffset = 16
)

// Register Display Constants
const (
	// RegisterViewRows is the fixed height of the register view panel
	// (4 rows of GPRs + RIP row + blank line + flags row + cycles row +
	// 2 border rows)
	RegisterViewRows = 10

	// RegisterGroupSize is the number of registers displayed per row
	RegisterGroupSize = 4
)
