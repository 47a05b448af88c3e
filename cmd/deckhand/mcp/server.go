// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/lib/toolserver"
	"github.com/bureau-foundation/deckhand/lib/version"
)

// maxMessageSize bounds a single JSON-RPC line. Tables and charts
// arrive inline, so the limit is generous.
const maxMessageSize = 16 * 1024 * 1024

// Tool is one operation exposed over MCP.
type Tool struct {
	// Name is the tool name clients call (e.g., "add-slide").
	Name string

	// Title is a short human-readable display name.
	Title string

	// Description tells the agent what the tool does and when to
	// call it.
	Description string

	// Annotations are behavioral hints (read-only, destructive).
	Annotations *cli.ToolAnnotations

	// Params returns a pointer to a fresh, zero parameter struct. Its
	// tags define the input schema; validated arguments are decoded
	// into it before Run.
	Params func() any

	// Output is a zero value of the structured result type, or nil
	// when the tool returns text only.
	Output any

	// Run executes the tool with the decoded params (the pointer
	// Params returned). A returned error becomes an error envelope;
	// use the cli category constructors to classify it.
	Run func(ctx context.Context, params any) (Result, error)
}

// Result is a successful tool outcome.
type Result struct {
	// Text holds the content blocks, in order.
	Text []string

	// Structured is marshaled into structuredContent when non-nil.
	Structured any
}

// Server is an MCP server exposing a fixed set of tools over JSON-RPC
// 2.0 on newline-delimited stdio. Requests are handled one at a time.
type Server struct {
	tools        []tool
	toolsByName  map[string]*tool
	logger       *slog.Logger
	instructions string
	initialized  bool
}

// tool is a Tool with its schemas resolved.
type tool struct {
	Tool
	inputSchema  *cli.Schema
	outputSchema *cli.Schema
}

// ServerOption configures optional server behavior.
type ServerOption func(*Server)

// WithLogger sets the logger for call tracing. Defaults to discarding.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithInstructions sets the usage hint returned from initialize.
func WithInstructions(instructions string) ServerOption {
	return func(s *Server) {
		s.instructions = instructions
	}
}

// NewServer resolves every tool's schemas. A schema that cannot be
// generated or a duplicate tool name is a programming error and is
// returned as such.
func NewServer(tools []Tool, options ...ServerOption) (*Server, error) {
	s := &Server{
		toolsByName: make(map[string]*tool, len(tools)),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(s)
	}

	seen := make(map[string]struct{}, len(tools))
	for _, definition := range tools {
		if definition.Params == nil || definition.Run == nil {
			return nil, fmt.Errorf("tool %q: Params and Run are required", definition.Name)
		}
		if _, exists := seen[definition.Name]; exists {
			return nil, fmt.Errorf("tool %q registered twice", definition.Name)
		}
		seen[definition.Name] = struct{}{}
		inputSchema, err := cli.ParamsSchema(definition.Params())
		if err != nil {
			return nil, fmt.Errorf("tool %q: input schema: %w", definition.Name, err)
		}
		var outputSchema *cli.Schema
		if definition.Output != nil {
			if outputSchema, err = cli.OutputSchema(definition.Output); err != nil {
				return nil, fmt.Errorf("tool %q: output schema: %w", definition.Name, err)
			}
		}
		s.tools = append(s.tools, tool{Tool: definition, inputSchema: inputSchema, outputSchema: outputSchema})
	}
	for i := range s.tools {
		s.toolsByName[s.tools[i].Name] = &s.tools[i]
	}
	return s, nil
}

// Run processes JSON-RPC 2.0 requests from input and writes responses
// to output until input reaches EOF or ctx is cancelled. Each message
// occupies a single line.
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	encoder := json.NewEncoder(output)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if writeErr := writeError(encoder, json.RawMessage("null"), codeParseError, "parse error: "+err.Error()); writeErr != nil {
				return fmt.Errorf("writing parse error response: %w", writeErr)
			}
			continue
		}

		if req.JSONRPC != "2.0" {
			if !req.isNotification() {
				if writeErr := writeError(encoder, req.ID, codeInvalidRequest, "unsupported JSON-RPC version"); writeErr != nil {
					return fmt.Errorf("writing version error response: %w", writeErr)
				}
			}
			continue
		}

		// Notifications (notifications/initialized and friends) get
		// no response.
		if req.isNotification() {
			continue
		}

		if err := s.dispatch(ctx, encoder, &req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, encoder *json.Encoder, req *request) error {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(encoder, req)
	case "ping":
		return writeResult(encoder, req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return writeResult(encoder, req.ID, toolsListResult{Tools: s.descriptions()})
	case "tools/call":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, encoder, req)
	default:
		return writeError(encoder, req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for initialize")
	}
	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	s.initialized = true
	s.logger.Info("client initialized",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"requested_protocol", params.ProtocolVersion,
	)

	return writeResult(encoder, req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      implementation{Name: serverName, Version: version.Short()},
		Instructions:    s.instructions,
	})
}

func (s *Server) descriptions() []toolDescription {
	descriptions := make([]toolDescription, 0, len(s.tools))
	for i := range s.tools {
		t := &s.tools[i]
		description := toolDescription{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.inputSchema,
			Annotations: resolveAnnotations(t.Annotations),
		}
		// A nil *cli.Schema stored in the interface would encode as
		// null rather than be omitted.
		if t.outputSchema != nil {
			description.OutputSchema = t.outputSchema
		}
		descriptions = append(descriptions, description)
	}
	return descriptions
}

func (s *Server) handleToolsCall(ctx context.Context, encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for tools/call")
	}
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	result, err := s.execute(ctx, params.Name, params.Arguments)
	if err != nil {
		code := codeInvalidParams
		var toolErr *cli.ToolError
		if errors.As(err, &toolErr) && toolErr.Category == cli.CategoryInternal {
			code = codeInternalError
		}
		return writeError(encoder, req.ID, code, err.Error())
	}
	return writeResult(encoder, req.ID, result)
}

// execute validates the arguments and runs the tool. A returned error
// means the tool never ran: the name is unknown or the arguments do
// not satisfy the input schema. Failures of the tool itself come back
// as an error envelope.
func (s *Server) execute(ctx context.Context, name string, arguments json.RawMessage) (toolsCallResult, error) {
	t, ok := s.toolsByName[name]
	if !ok {
		return toolsCallResult{}, cli.Validation("unknown tool: %s", name)
	}

	logger := s.logger.With("tool", name)
	if err := t.inputSchema.Validate(arguments); err != nil {
		logger.Debug("arguments rejected", "error", err)
		return toolsCallResult{}, err
	}
	params := t.Params()
	if err := cli.DecodeParams(params, arguments); err != nil {
		logger.Debug("arguments rejected", "error", err)
		return toolsCallResult{}, err
	}

	start := time.Now()
	output, runErr := t.Run(ctx, params)
	result := buildToolResult(output, runErr)
	if result.IsError {
		logger.Info("tool failed",
			"category", result.ErrorInfo.Category,
			"error", result.Content[len(result.Content)-1].Text,
			"duration", time.Since(start),
		)
	} else {
		logger.Debug("tool succeeded", "duration", time.Since(start))
	}
	return result, nil
}

// buildToolResult assembles the call envelope from a tool's outcome.
func buildToolResult(output Result, runErr error) toolsCallResult {
	if runErr != nil {
		return toolsCallResult{
			Content:   []contentBlock{{Type: "text", Text: runErr.Error()}},
			IsError:   true,
			ErrorInfo: classifyError(runErr),
		}
	}

	result := toolsCallResult{}
	for _, text := range output.Text {
		result.Content = append(result.Content, contentBlock{Type: "text", Text: text})
	}
	if output.Structured != nil {
		structured, err := json.Marshal(output.Structured)
		if err != nil {
			return buildToolResult(Result{}, cli.Internal("encoding structured result: %w", err))
		}
		result.StructuredContent = structured
	}
	// MCP requires at least one content block.
	if len(result.Content) == 0 {
		result.Content = []contentBlock{{Type: "text", Text: ""}}
	}
	return result
}

// classifyError extracts errorInfo from a tool failure. Errors that
// are not a [cli.ToolError] are internal.
func classifyError(err error) *errorInfo {
	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		return &errorInfo{Category: string(toolErr.Category), Retryable: toolErr.Retryable()}
	}
	return &errorInfo{Category: string(cli.CategoryInternal), Retryable: false}
}

func resolveAnnotations(annotations *cli.ToolAnnotations) *toolAnnotations {
	if annotations == nil {
		return nil
	}
	return &toolAnnotations{
		ReadOnlyHint:    annotations.ReadOnly,
		DestructiveHint: annotations.Destructive,
		IdempotentHint:  annotations.Idempotent,
		OpenWorldHint:   annotations.OpenWorld,
	}
}

// Tools returns metadata for every tool, in registration order.
// Implements [toolserver.Server].
func (s *Server) Tools() []toolserver.ToolExport {
	exports := make([]toolserver.ToolExport, 0, len(s.tools))
	for i := range s.tools {
		t := &s.tools[i]
		// Schemas are plain data built by cli.ParamsSchema; a marshal
		// failure would be a programming error.
		inputSchema, err := json.Marshal(t.inputSchema)
		if err != nil {
			continue
		}
		export := toolserver.ToolExport{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: inputSchema,
		}
		if t.outputSchema != nil {
			if export.OutputSchema, err = json.Marshal(t.outputSchema); err != nil {
				continue
			}
		}
		if t.Annotations != nil && t.Annotations.ReadOnly != nil {
			export.ReadOnly = *t.Annotations.ReadOnly
		}
		exports = append(exports, export)
	}
	return exports
}

// CallTool runs a tool through the same validation and envelope path
// as tools/call, without the JSON-RPC framing. Implements
// [toolserver.Server].
func (s *Server) CallTool(ctx context.Context, name string, arguments json.RawMessage) (toolserver.CallResult, error) {
	result, err := s.execute(ctx, name, arguments)
	if err != nil {
		return toolserver.CallResult{}, err
	}
	call := toolserver.CallResult{
		Structured: result.StructuredContent,
		IsError:    result.IsError,
	}
	for _, block := range result.Content {
		call.Content = append(call.Content, block.Text)
	}
	if result.ErrorInfo != nil {
		call.Category = result.ErrorInfo.Category
	}
	return call, nil
}

var _ toolserver.Server = (*Server)(nil)

func writeResult(encoder *json.Encoder, id json.RawMessage, result any) error {
	return encoder.Encode(response{JSONRPC: "2.0", ID: id, Result: result})
}

func writeError(encoder *json.Encoder, id json.RawMessage, code int, message string) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
