package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/logger"
)

type wireError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *wireError      `json:"error"`
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

type harness struct {
	t      *testing.T
	srv    *Server
	in     *io.PipeWriter
	out    *bufio.Reader
	served chan error
}

func newHarness(t *testing.T, tools []mcpserver.ServerTool, opts ...Option) *harness {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	opts = append([]Option{WithIO(inR, outW), WithLogger(logger.Nop())}, opts...)
	srv := NewServer(mcpgo.Implementation{Name: "assemblyai-mcp-server", Version: "1.0.0"}, tools, opts...)

	hs := &harness{t: t, srv: srv, in: inW, out: bufio.NewReader(outR), served: make(chan error, 1)}
	go func() { hs.served <- srv.Serve(context.Background()) }()
	t.Cleanup(func() {
		inW.Close()
		outR.Close()
	})
	return hs
}

func (hs *harness) send(line string) {
	hs.t.Helper()
	if _, err := io.WriteString(hs.in, line+"\n"); err != nil {
		hs.t.Fatalf("write: %v", err)
	}
}

func (hs *harness) recv() wireResponse {
	hs.t.Helper()
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := hs.out.ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			hs.t.Fatalf("read: %v", r.err)
		}
		var resp wireResponse
		if err := json.Unmarshal([]byte(r.line), &resp); err != nil {
			hs.t.Fatalf("response is not JSON: %v (%q)", err, r.line)
		}
		if resp.JSONRPC != "2.0" {
			hs.t.Errorf("expected jsonrpc 2.0, got %q", resp.JSONRPC)
		}
		return resp
	case <-time.After(5 * time.Second):
		hs.t.Fatal("timed out waiting for response")
	}
	return wireResponse{}
}

func tool(name string, fn mcpserver.ToolHandlerFunc) mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool:    mcpgo.NewToolWithRawSchema(name, "test tool "+name, json.RawMessage(`{"type":"object"}`)),
		Handler: fn,
	}
}

func echoTools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		tool("echo", func(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return mcpgo.NewToolResultText(fmt.Sprint(req.GetArguments()["text"])), nil
		}),
	}
}

func decodeResult(t *testing.T, resp wireResponse) toolResult {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
	var res toolResult
	if err := json.Unmarshal(resp.Result, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"latest", mcpgo.LATEST_PROTOCOL_VERSION, mcpgo.LATEST_PROTOCOL_VERSION},
		{"older supported", "2024-11-05", "2024-11-05"},
		{"unknown falls back", "1999-01-01", mcpgo.LATEST_PROTOCOL_VERSION},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hs := newHarness(t, echoTools())
			hs.send(fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":%q,"capabilities":{},"clientInfo":{"name":"host","version":"0.1"}}}`, tc.version))
			resp := hs.recv()
			if resp.Error != nil {
				t.Fatalf("unexpected error %+v", resp.Error)
			}
			var res struct {
				ProtocolVersion string               `json:"protocolVersion"`
				Capabilities    map[string]any       `json:"capabilities"`
				ServerInfo      mcpgo.Implementation `json:"serverInfo"`
			}
			if err := json.Unmarshal(resp.Result, &res); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			if res.ProtocolVersion != tc.want {
				t.Errorf("expected protocol %s, got %s", tc.want, res.ProtocolVersion)
			}
			if res.ServerInfo.Name != "assemblyai-mcp-server" || res.ServerInfo.Version != "1.0.0" {
				t.Errorf("unexpected server info %+v", res.ServerInfo)
			}
			if _, ok := res.Capabilities["tools"]; !ok {
				t.Error("expected tools capability")
			}
		})
	}
}

func TestPingAndList(t *testing.T) {
	noop := func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return mcpgo.NewToolResultText(""), nil
	}
	hs := newHarness(t, []mcpserver.ServerTool{tool("zeta", noop), tool("echo", noop)})

	hs.send(`{"jsonrpc":"2.0","id":"p1","method":"ping"}`)
	resp := hs.recv()
	if string(resp.ID) != `"p1"` || string(resp.Result) != `{}` {
		t.Errorf("unexpected ping reply id=%s result=%s", resp.ID, resp.Result)
	}

	hs.send(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	resp = hs.recv()
	var res struct {
		Tools []struct {
			Name        string         `json:"name"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Tools) != 2 || res.Tools[0].Name != "echo" || res.Tools[1].Name != "zeta" {
		t.Fatalf("unexpected tools %+v", res.Tools)
	}
	if res.Tools[0].InputSchema["type"] != "object" {
		t.Errorf("expected raw input schema, got %v", res.Tools[0].InputSchema)
	}
}

func TestToolsCall(t *testing.T) {
	hs := newHarness(t, echoTools())

	hs.send(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`)
	res := decodeResult(t, hs.recv())
	if len(res.Content) != 1 || res.Content[0].Type != "text" || res.Content[0].Text != "hi" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.IsError {
		t.Error("expected isError false")
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantID string
		code   int
	}{
		{"parse error", `{not json`, "null", mcpgo.PARSE_ERROR},
		{"not an object", `[1,2]`, "null", mcpgo.PARSE_ERROR},
		{"missing jsonrpc", `{"id":7,"method":"ping"}`, "7", mcpgo.INVALID_REQUEST},
		{"missing method", `{"jsonrpc":"2.0","id":8}`, "8", mcpgo.METHOD_NOT_FOUND},
		{"unknown method", `{"jsonrpc":"2.0","id":9,"method":"resources/list"}`, "9", mcpgo.METHOD_NOT_FOUND},
		{"unknown tool", `{"jsonrpc":"2.0","id":10,"method":"tools/call","params":{"name":"nope"}}`, "10", mcpgo.METHOD_NOT_FOUND},
		{"unknown tool string id", `{"jsonrpc":"2.0","id":"10","method":"tools/call","params":{"name":"nope"}}`, `"10"`, mcpgo.METHOD_NOT_FOUND},
		{"call without params", `{"jsonrpc":"2.0","id":11,"method":"tools/call"}`, "11", mcpgo.INVALID_PARAMS},
		{"call without name", `{"jsonrpc":"2.0","id":12,"method":"tools/call","params":{}}`, "12", mcpgo.INVALID_PARAMS},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hs := newHarness(t, echoTools())
			hs.send(tc.line)
			resp := hs.recv()
			if resp.Error == nil {
				t.Fatalf("expected error, got result %s", resp.Result)
			}
			if resp.Error.Code != tc.code {
				t.Errorf("expected code %d, got %d (%s)", tc.code, resp.Error.Code, resp.Error.Message)
			}
			if string(resp.ID) != tc.wantID {
				t.Errorf("expected id %s, got %s", tc.wantID, resp.ID)
			}
			if resp.Result != nil {
				t.Errorf("error reply must not carry a result, got %s", resp.Result)
			}
		})
	}
}

func TestUnknownToolReply(t *testing.T) {
	hs := newHarness(t, echoTools())
	hs.send(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"transcribe_video","arguments":{}}}`)
	resp := hs.recv()
	if resp.Error == nil || resp.Error.Message != "Unknown tool: transcribe_video" {
		t.Fatalf("unexpected reply %+v", resp.Error)
	}
	var data errors.ErrorData
	if err := json.Unmarshal(resp.Error.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Code != errors.ErrCodeMethodNotFound || data.Details["tool"] != "transcribe_video" {
		t.Errorf("unexpected data %+v", data)
	}
	if n := hs.srv.pending.size(); n != 0 {
		t.Errorf("expected no pending errors after the reply, got %d", n)
	}
}

type rateLimited struct{}

func (rateLimited) Error() string { return "rate limited" }

func (rateLimited) AppError() *errors.AppError {
	return errors.New(errors.ErrCodeRateLimited, "rate limited")
}

func TestHandlerErrorsKeepTheirCodes(t *testing.T) {
	retryable := errors.ToolExecution("slow", rateLimited{})
	tools := []mcpserver.ServerTool{
		tool("invalid", func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return nil, errors.MissingField("audio_url")
		}),
		tool("slow", func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return nil, fmt.Errorf("wrapped: %w", retryable)
		}),
		tool("plain", func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return nil, fmt.Errorf("disk on fire")
		}),
	}

	tests := []struct {
		tool      string
		code      int
		message   string
		appCode   errors.ErrorCode
		retryable bool
	}{
		{"invalid", mcpgo.INVALID_PARAMS, "Missing or invalid required argument: audio_url", errors.ErrCodeInvalidParams, false},
		{"slow", mcpgo.INTERNAL_ERROR, retryable.Message, errors.ErrCodeRateLimited, true},
	}
	for i, tc := range tests {
		t.Run(tc.tool, func(t *testing.T) {
			hs := newHarness(t, tools)
			hs.send(fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":%q}}`, i, tc.tool))
			resp := hs.recv()
			if resp.Error == nil {
				t.Fatalf("expected error, got %s", resp.Result)
			}
			if resp.Error.Code != tc.code || resp.Error.Message != tc.message {
				t.Errorf("unexpected error %d %q", resp.Error.Code, resp.Error.Message)
			}
			var data errors.ErrorData
			if err := json.Unmarshal(resp.Error.Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if data.Code != tc.appCode || data.Retryable != tc.retryable {
				t.Errorf("unexpected data %+v", data)
			}
		})
	}

	t.Run("plain", func(t *testing.T) {
		hs := newHarness(t, tools)
		hs.send(`{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"plain"}}`)
		resp := hs.recv()
		if resp.Error == nil || resp.Error.Code != mcpgo.INTERNAL_ERROR {
			t.Fatalf("expected internal error, got %+v", resp.Error)
		}
		if !strings.Contains(resp.Error.Message, "disk on fire") {
			t.Errorf("expected cause in message, got %q", resp.Error.Message)
		}
	})
}

func TestResultMentioningErrorPassesThrough(t *testing.T) {
	hs := newHarness(t, echoTools())
	hs.send(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"text":"{\"error\":\"x\"}"}}}`)
	res := decodeResult(t, hs.recv())
	if len(res.Content) != 1 || res.Content[0].Text != `{"error":"x"}` {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestNotificationsGetNoReply(t *testing.T) {
	hs := newHarness(t, echoTools())

	hs.send(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	hs.send(`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":1}}`)
	hs.send(`{"jsonrpc":"2.0","id":"after","method":"ping"}`)

	resp := hs.recv()
	if string(resp.ID) != `"after"` {
		t.Errorf("expected only the ping reply, got id %s", resp.ID)
	}
}

func TestConcurrentCallsDoNotBlockEachOther(t *testing.T) {
	release := make(chan struct{})
	hs := newHarness(t, []mcpserver.ServerTool{
		tool("t", func(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			id := fmt.Sprint(req.GetArguments()["id"])
			if id == "slow" {
				<-release
			}
			return mcpgo.NewToolResultText(id), nil
		}),
	})

	hs.send(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"t","arguments":{"id":"slow"}}}`)
	hs.send(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"t","arguments":{"id":"fast"}}}`)

	first := hs.recv()
	if string(first.ID) != "2" || !strings.Contains(string(first.Result), "fast") {
		t.Errorf("expected fast reply first, got id %s result %s", first.ID, first.Result)
	}
	close(release)
	second := hs.recv()
	if string(second.ID) != "1" || !strings.Contains(string(second.Result), "slow") {
		t.Errorf("expected slow reply second, got id %s result %s", second.ID, second.Result)
	}
}

func TestToolCallOutlivesServeContext(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ctxErr := make(chan error, 1)
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	t.Cleanup(func() {
		inW.Close()
		outR.Close()
	})

	srv := NewServer(mcpgo.Implementation{}, []mcpserver.ServerTool{
		tool("t", func(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			close(started)
			<-release
			ctxErr <- ctx.Err()
			return mcpgo.NewToolResultText("done"), nil
		}),
	}, WithIO(inR, outW), WithLogger(logger.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx) }()

	if _, err := io.WriteString(inW, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"t"}}`+"\n"); err != nil {
		t.Fatal(err)
	}
	<-started
	cancel()
	if err := <-served; err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	go func() { _, _ = bufio.NewReader(outR).ReadString('\n') }()
	close(release)
	if err := <-ctxErr; err != nil {
		t.Errorf("tool call context was cancelled: %v", err)
	}
	if err := srv.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestServeReturnsOnEOF(t *testing.T) {
	hs := newHarness(t, echoTools())
	hs.in.Close()

	select {
	case err := <-hs.served:
		if err != nil {
			t.Errorf("expected nil on EOF, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return on EOF")
	}
	if err := hs.srv.Close(context.Background()); err != nil {
		t.Errorf("Close after EOF: %v", err)
	}
}

func TestServeReturnsOnCancel(t *testing.T) {
	inR, _ := io.Pipe()
	srv := NewServer(mcpgo.Implementation{}, echoTools(), WithIO(inR, io.Discard), WithLogger(logger.Nop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := srv.Close(context.Background()); err != nil {
		t.Errorf("Close on a server that never listened: %v", err)
	}
}

func TestServeTwice(t *testing.T) {
	hs := newHarness(t, echoTools())
	hs.send(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	hs.recv()
	if err := hs.srv.Serve(context.Background()); err == nil {
		t.Error("expected error when serving twice")
	}
}

func TestCloseWaitsForInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	hs := newHarness(t, []mcpserver.ServerTool{
		tool("t", func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			close(started)
			<-release
			return mcpgo.NewToolResultText("done"), nil
		}),
	})
	hs.send(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"t"}}`)
	<-started

	if n := hs.srv.InFlight(); n != 1 {
		t.Errorf("expected 1 in flight, got %d", n)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := hs.srv.Close(ctx); err == nil {
		t.Fatal("expected Close to time out while a call is in flight")
	}

	// Drain the reply so the writer does not block.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hs.out.ReadString('\n')
	}()
	close(release)

	if err := hs.srv.Close(context.Background()); err != nil {
		t.Errorf("expected clean close, got %v", err)
	}
	wg.Wait()

	select {
	case err := <-hs.served:
		if err != nil {
			t.Errorf("expected nil after Close, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
	if n := hs.srv.InFlight(); n != 0 {
		t.Errorf("expected nothing in flight, got %d", n)
	}
}

func TestPanicReachesFaultHandler(t *testing.T) {
	faults := make(chan any, 1)
	hs := newHarness(t, []mcpserver.ServerTool{
		tool("t", func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			panic("boom")
		}),
	}, WithFaultHandler(func(r any, stack []byte) {
		if len(stack) == 0 {
			t.Error("expected a stack")
		}
		faults <- r
	}))
	hs.send(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"t"}}`)

	select {
	case r := <-faults:
		if r != "boom" {
			t.Errorf("unexpected recovered value %v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fault handler not called")
	}

	resp := hs.recv()
	if resp.Error == nil || resp.Error.Code != mcpgo.INTERNAL_ERROR {
		t.Errorf("expected internal error reply, got %+v", resp.Error)
	}
}

func TestReplyWriter(t *testing.T) {
	pending := newPendingErrors()
	pending.put(float64(5), errors.UnknownTool("nope"))
	pending.put("5", errors.MissingField("name"))

	var buf bytes.Buffer
	w := &replyWriter{out: &buf, pending: pending}

	lines := []string{
		`{"jsonrpc":"2.0","id":1,"result":{}}` + "\n",
		`{"jsonrpc":"2.0","id":6,"error":{"code":-32603,"message":"other"}}` + "\n",
		`{"jsonrpc":"2.0","id":5,"error":{"code":-32602,"message":"tool 'nope' not found: tool not found"}}` + "\n",
		`{"jsonrpc":"2.0","id":"5","error":{"code":-32602,"message":"tool '' not found: tool not found"}}` + "\n",
	}
	for _, line := range lines {
		n, err := w.Write([]byte(line))
		if err != nil || n != len(line) {
			t.Fatalf("Write(%q) = %d, %v", line, n, err)
		}
	}

	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(out) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(out), buf.String())
	}
	if out[0]+"\n" != lines[0] || out[1]+"\n" != lines[1] {
		t.Errorf("unrelated lines must pass through, got %q", out[:2])
	}

	var numeric, str wireResponse
	if err := json.Unmarshal([]byte(out[2]), &numeric); err != nil {
		t.Fatal(err)
	}
	if string(numeric.ID) != "5" || numeric.Error.Code != mcpgo.METHOD_NOT_FOUND || numeric.Error.Message != "Unknown tool: nope" {
		t.Errorf("unexpected rewrite %s", out[2])
	}
	if err := json.Unmarshal([]byte(out[3]), &str); err != nil {
		t.Fatal(err)
	}
	if string(str.ID) != `"5"` || str.Error.Code != mcpgo.INVALID_PARAMS {
		t.Errorf("string id must match its own entry, got %s", out[3])
	}
	if pending.size() != 0 {
		t.Errorf("expected pending errors to be consumed, got %d", pending.size())
	}
}
