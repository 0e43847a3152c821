// Package mcp serves sentimeter scoring and analytics as Model Context
// Protocol tools over a stdio JSON-RPC 2.0 stream.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// protocolVersion is the MCP revision the server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// maxLine bounds one request; score_feedback payloads are small.
const maxLine = 4 << 20

// Server answers MCP requests, one JSON object per line in each direction.
type Server struct {
	tools   []toolDef
	byName  map[string]*toolDef
	backend Backend
	version string
	log     *zap.Logger
}

type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

// toolHandler returns a JSON-encodable value or an error that is shown to
// the client as tool output.
type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type callResult struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// NewServer builds a server whose tools go through backend. A nil log
// discards.
func NewServer(backend Backend, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{backend: backend, version: version, log: log, byName: map[string]*toolDef{}}
	addTools(s)
	return s
}

func (s *Server) registerTool(def toolDef) {
	s.tools = append(s.tools, def)
	for i := range s.tools {
		s.byName[s.tools[i].Name] = &s.tools[i]
	}
}

// Run serves requests from r until EOF or ctx is done. Only read and write
// failures are returned; protocol errors are answered in-band.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	lines, readErr := readLines(ctx, r)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			resp, reply := s.handle(ctx, line)
			if !reply {
				continue
			}
			if err := writeLine(out, resp); err != nil {
				return err
			}
		}
	}
}

// readLines scans r on its own goroutine so Run can stop on ctx while a
// read blocks. lines is closed at EOF; a scan error is sent on errs.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64<<10), maxLine)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			errs <- err
			return
		}
		close(lines)
	}()
	return lines, errs
}

// handle answers one line. Notifications get no reply.
func (s *Server) handle(ctx context.Context, line string) (response, bool) {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "Parse error"}}, true
	}
	if req.ID == nil {
		s.log.Debug("notification", zap.String("method", req.Method))
		return response{}, false
	}

	resp := response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": "sentimeter", "version": s.version},
		}
	case "tools/list":
		infos := make([]toolInfo, len(s.tools))
		for i, t := range s.tools {
			infos[i] = toolInfo{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
		}
		resp.Result = map[string]any{"tools": infos}
	case "tools/call":
		var p callParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			resp.Error = &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
			break
		}
		resp.Result = s.call(ctx, p)
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
	}
	return resp, true
}

// call runs one tool. Its failure is tool output, not a protocol error.
func (s *Server) call(ctx context.Context, p callParams) callResult {
	tool, ok := s.byName[p.Name]
	if !ok {
		return failed(fmt.Errorf("unknown tool: %s", p.Name))
	}
	args := p.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	v, err := tool.Handler(ctx, args)
	if err != nil {
		s.log.Debug("tool failed", zap.String("tool", p.Name), zap.Error(err))
		return failed(err)
	}
	text, err := json.Marshal(v)
	if err != nil {
		return failed(err)
	}
	return callResult{Content: []textContent{{Type: "text", Text: string(text)}}}
}

func failed(err error) callResult {
	return callResult{Content: []textContent{{Type: "text", Text: err.Error()}}, IsError: true}
}

func writeLine(w *bufio.Writer, resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}
