package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/n-stott/x64emulator/config"
	"github.com/n-stott/x64emulator/service"
)

// handleCreateSession handles POST /api/v1/session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.sessions.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create session: %v", err))
		return
	}

	response := SessionCreateResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	}

	writeJSON(w, http.StatusCreated, response)
}

// handleListSessions handles GET /api/v1/session
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()

	response := map[string]interface{}{
		"sessions": ids,
		"count":    len(ids),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleGetSessionStatus handles GET /api/v1/session/{id}
func (s *Server) handleGetSessionStatus(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	regs := session.Service.GetRegisterState()
	state := session.Service.GetExecutionState()

	response := SessionStatusResponse{
		SessionID: sessionID,
		State:     string(state),
		RIP:       regs.RIP,
		Cycles:    regs.Cycles,
	}

	writeJSON(w, http.StatusOK, response)
}

// handleDestroySession handles DELETE /api/v1/session/{id}
func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	err := s.sessions.DestroySession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Session destroyed",
	})
}

// handleLoadProgram handles POST /api/v1/session/{id}/load
func (s *Server) handleLoadProgram(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req LoadProgramRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stackSize := req.StackSize
	if stackSize == 0 {
		stackSize = 1 << 20
	}

	if loadErr := session.Service.LoadProgram(req.Instructions, req.EntryPoint, req.Symbols, stackSize); loadErr != nil {
		response := LoadProgramResponse{
			Success: false,
			Errors:  []string{loadErr.Error()},
		}
		writeJSON(w, http.StatusBadRequest, response)
		return
	}

	writeJSON(w, http.StatusOK, LoadProgramResponse{Success: true})
}

// handleRun handles POST /api/v1/session/{id}/run
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	// Set running state synchronously before launching the goroutine so the
	// caller can immediately observe the state change.
	session.Service.SetRunning(true)

	go func() {
		_ = session.Service.RunUntilHalt()
	}()

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Program started",
	})
}

// handleStop handles POST /api/v1/session/{id}/stop
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session.Service.Pause()

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Program stopped",
	})
}

// handleStep handles POST /api/v1/session/{id}/step
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if stepErr := session.Service.Step(); stepErr != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Step failed: %v", stepErr))
		return
	}

	regs := session.Service.GetRegisterState()
	state := session.Service.GetExecutionState()

	s.broadcastStateChange(sessionID, &regs, state)

	writeJSON(w, http.StatusOK, ToRegisterResponse(&regs))
}

// handleStepOver handles POST /api/v1/session/{id}/step-over
func (s *Server) handleStepOver(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if stepErr := session.Service.StepOver(); stepErr != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Step over failed: %v", stepErr))
		return
	}

	regs := session.Service.GetRegisterState()
	state := session.Service.GetExecutionState()
	s.broadcastStateChange(sessionID, &regs, state)

	writeJSON(w, http.StatusOK, ToRegisterResponse(&regs))
}

// handleStepOut handles POST /api/v1/session/{id}/step-out
func (s *Server) handleStepOut(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if stepErr := session.Service.StepOut(); stepErr != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Step out failed: %v", stepErr))
		return
	}

	regs := session.Service.GetRegisterState()
	state := session.Service.GetExecutionState()
	s.broadcastStateChange(sessionID, &regs, state)

	writeJSON(w, http.StatusOK, ToRegisterResponse(&regs))
}

// handleReset handles POST /api/v1/session/{id}/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if err := session.Service.ResetToEntryPoint(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Reset failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Dispatcher reset",
	})
}

// handleGetRegisters handles GET /api/v1/session/{id}/registers
func (s *Server) handleGetRegisters(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	regs := session.Service.GetRegisterState()
	writeJSON(w, http.StatusOK, ToRegisterResponse(&regs))
}

// handleGetMemory handles GET /api/v1/session/{id}/memory
func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	query := r.URL.Query()
	address, err := parseHexOrDec(query.Get("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid address parameter")
		return
	}

	length, err := strconv.ParseUint(query.Get("length"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid length parameter")
		return
	}

	const maxMemoryRead = 1024 * 1024 // 1MB
	if length > maxMemoryRead {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Length too large (max %d bytes)", maxMemoryRead))
		return
	}

	data := session.Service.GetMemory(address, length)

	writeJSON(w, http.StatusOK, MemoryResponse{
		Address: address,
		Data:    data,
		Length:  length,
	})
}

// handleGetDisassembly handles GET /api/v1/session/{id}/disassembly
func (s *Server) handleGetDisassembly(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	query := r.URL.Query()
	address, err := parseHexOrDec(query.Get("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid address parameter")
		return
	}

	count, err := strconv.ParseUint(query.Get("count"), 10, 32)
	if err != nil || count == 0 {
		count = 10
	}

	const maxDisassembly = 1000
	if count > maxDisassembly {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Count too large (max %d)", maxDisassembly))
		return
	}

	lines := session.Service.GetDisassembly(address, int(count))

	instructions := make([]InstructionInfo, len(lines))
	for i, line := range lines {
		instructions[i] = ToInstructionInfo(&line)
	}

	writeJSON(w, http.StatusOK, DisassemblyResponse{Instructions: instructions})
}

// handleGetStack handles GET /api/v1/session/{id}/stack
func (s *Server) handleGetStack(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	query := r.URL.Query()
	offset := 0
	if v := query.Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset parameter")
			return
		}
		offset = parsed
	}

	count := 10
	if v := query.Get("count"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid count parameter")
			return
		}
		count = parsed
	}

	entries := session.Service.GetStack(offset, count)
	writeJSON(w, http.StatusOK, StackResponse{Entries: entries})
}

// handleGetConsoleOutput handles GET /api/v1/session/{id}/console
func (s *Server) handleGetConsoleOutput(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, ConsoleResponse{Output: session.Service.GetOutput()})
}

// handleGetSourceMap handles GET /api/v1/session/{id}/sourcemap
func (s *Server) handleGetSourceMap(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	symbols := session.Service.GetSymbols()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": symbols,
	})
}

// handleBreakpoint handles POST/DELETE /api/v1/session/{id}/breakpoint
func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req BreakpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := session.Service.AddBreakpoint(req.Address); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to add breakpoint: %v", err))
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Breakpoint added",
		})

	case http.MethodDelete:
		var req BreakpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := session.Service.RemoveBreakpoint(req.Address); err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Failed to remove breakpoint: %v", err))
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Breakpoint removed",
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListBreakpoints handles GET /api/v1/session/{id}/breakpoints
func (s *Server) handleListBreakpoints(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	breakpoints := session.Service.GetBreakpoints()
	addresses := make([]uint64, len(breakpoints))
	for i, bp := range breakpoints {
		addresses[i] = bp.Address
	}

	writeJSON(w, http.StatusOK, BreakpointsResponse{Breakpoints: addresses})
}

// handleWatchpoint handles POST /api/v1/session/{id}/watchpoint
func (s *Server) handleWatchpoint(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req WatchpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		watchType := req.Type
		if watchType == "" {
			watchType = "readwrite"
		}
		if watchType != "read" && watchType != "write" && watchType != "readwrite" {
			writeError(w, http.StatusBadRequest, "Invalid watchpoint type (must be 'read', 'write', or 'readwrite')")
			return
		}

		if err := session.Service.AddWatchpoint(req.Address, watchType); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to add watchpoint: %v", err))
			return
		}

		watchpoints := session.Service.GetWatchpoints()
		var created *service.WatchpointInfo
		for i := range watchpoints {
			if watchpoints[i].Address == req.Address {
				created = &watchpoints[i]
				break
			}
		}

		if created == nil {
			writeError(w, http.StatusInternalServerError, "Failed to retrieve created watchpoint")
			return
		}

		writeJSON(w, http.StatusOK, WatchpointResponse{
			ID:      created.ID,
			Address: created.Address,
			Type:    created.Type,
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDeleteWatchpoint handles DELETE /api/v1/session/{id}/watchpoint/{watchpointID}
func (s *Server) handleDeleteWatchpoint(w http.ResponseWriter, r *http.Request, sessionID string, watchpointID int) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if err := session.Service.RemoveWatchpoint(watchpointID); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Failed to remove watchpoint: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Watchpoint removed",
	})
}

// handleListWatchpoints handles GET /api/v1/session/{id}/watchpoints
func (s *Server) handleListWatchpoints(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, WatchpointsResponse{Watchpoints: session.Service.GetWatchpoints()})
}

// handleEvaluateExpression handles POST /api/v1/session/{id}/evaluate
func (s *Server) handleEvaluateExpression(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req EvaluateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	value, err := session.Service.EvaluateExpression(req.Expression)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to evaluate expression: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{Value: value})
}

// handleExecuteCommand handles POST /api/v1/session/{id}/command
func (s *Server) handleExecuteCommand(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req CommandRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	output, cmdErr := session.Service.ExecuteCommand(req.Command)
	if cmdErr != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Command failed: %v", cmdErr))
		return
	}

	writeJSON(w, http.StatusOK, CommandResponse{Output: output})
}

// parseHexOrDec parses a string as either hexadecimal (0x prefix) or decimal
func parseHexOrDec(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	if len(s) > 2 && s[:2] == "0x" {
		return strconv.ParseUint(s[2:], 16, 64)
	}

	return strconv.ParseUint(s, 10, 64)
}

// handleTraceControl handles POST /api/v1/session/{id}/trace/{enable|clear}
func (s *Server) handleTraceControl(w http.ResponseWriter, r *http.Request, sessionID string, action string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	switch action {
	case "enable":
		session.Service.EnableExecutionTrace(io.Discard)
		writeJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Execution trace enabled",
		})
	case "clear":
		session.Service.ClearExecutionTrace()
		writeJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Execution trace cleared",
		})
	default:
		writeError(w, http.StatusBadRequest, "Invalid action (must be 'enable' or 'clear')")
	}
}

// handleTraceData handles GET /api/v1/session/{id}/trace/data
func (s *Server) handleTraceData(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	entries := session.Service.GetExecutionTraceData()

	apiEntries := make([]TraceEntryInfo, len(entries))
	for i, entry := range entries {
		apiEntries[i] = TraceEntryInfo{
			Sequence:        entry.Sequence,
			Address:         entry.Address,
			Mnemonic:        fmt.Sprintf("%d", entry.Mnemonic), // caller's own decoder owns mnemonic text
			RegisterChanges: entry.RegisterChanges,
			Flags: FlagsInfo{
				CF: entry.CF,
				PF: entry.PF,
				ZF: entry.ZF,
				SF: entry.SF,
				OF: entry.OF,
				DF: entry.DF,
			},
			DurationNs: entry.Duration.Nanoseconds(),
		}
	}

	writeJSON(w, http.StatusOK, TraceDataResponse{
		Entries: apiEntries,
		Count:   len(apiEntries),
	})
}

// handleStatsControl handles POST /api/v1/session/{id}/stats/enable
func (s *Server) handleStatsControl(w http.ResponseWriter, r *http.Request, sessionID string, action string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	switch action {
	case "enable":
		session.Service.EnableStatistics()
		writeJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Statistics collection enabled",
		})
	default:
		writeError(w, http.StatusBadRequest, "Invalid action (must be 'enable')")
	}
}

// handleStats handles GET /api/v1/session/{id}/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	stats, err := session.Service.GetStatistics()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to get statistics: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, StatisticsResponse{
		TotalInstructions:  stats.TotalInstructions,
		TotalCycles:        stats.TotalCycles,
		ExecutionTimeMs:    stats.ExecutionTime.Milliseconds(),
		InstructionsPerSec: stats.InstructionsPerSec,
		InstructionCounts:  stats.InstructionCounts,
		BranchCount:        stats.BranchCount,
		BranchTakenCount:   stats.BranchTakenCount,
		BranchMissedCount:  stats.BranchMissedCount,
		MemoryReads:        stats.MemoryReads,
		MemoryWrites:       stats.MemoryWrites,
		BytesRead:          stats.BytesRead,
		BytesWritten:       stats.BytesWritten,
	})
}

// handleGetConfig handles GET /api/v1/config
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load configuration: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// handleUpdateConfig handles PUT /api/v1/config
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := config.DefaultConfig()
	if err := readJSON(r, cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := cfg.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save configuration: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Configuration updated",
	})
}

// broadcastStateChange broadcasts dispatcher state changes to WebSocket clients
func (s *Server) broadcastStateChange(sessionID string, regs *service.RegisterState, state service.ExecutionState) {
	if s.broadcaster == nil {
		return
	}

	data := map[string]interface{}{
		"status":    string(state),
		"rip":       regs.RIP,
		"cycles":    regs.Cycles,
		"registers": regs.Registers,
		"flags": map[string]bool{
			"cf": regs.Flags.CF,
			"pf": regs.Flags.PF,
			"zf": regs.Flags.ZF,
			"sf": regs.Flags.SF,
			"of": regs.Flags.OF,
			"df": regs.Flags.DF,
		},
	}

	s.broadcaster.BroadcastState(sessionID, data)
}
