package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/logger"
)

// toolWorkers bounds how many tool calls run at once.
const toolWorkers = 16

// FaultHandler is called with the recovered value and stack when a tool
// handler panics. The default re-panics, which crashes the process.
type FaultHandler func(recovered any, stack []byte)

// Server is an MCP server on stdio. Tool calls run concurrently on a worker
// pool; replies are written whole, one per line.
type Server struct {
	mcp     *mcpserver.MCPServer
	stdio   *mcpserver.StdioServer
	in      io.Reader
	out     io.Writer
	log     *logger.Logger
	onFault FaultHandler
	pending *pendingErrors

	active  atomic.Int64
	serving atomic.Bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	input   *input
	stopped chan struct{}
	err     error
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin/stdout (tests, pipes).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// WithLogger sets the server logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithFaultHandler sets the panic handler for tool calls.
func WithFaultHandler(fn FaultHandler) Option {
	return func(s *Server) { s.onFault = fn }
}

// NewServer creates a server bound to stdin and stdout serving tools.
func NewServer(info mcpgo.Implementation, tools []mcpserver.ServerTool, opts ...Option) *Server {
	s := &Server{
		in:      os.Stdin,
		out:     os.Stdout,
		log:     logger.Get("mcp"),
		onFault: func(recovered any, _ []byte) { panic(recovered) },
		pending: newPendingErrors(),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	hooks := &mcpserver.Hooks{}
	hooks.AddAfterInitialize(s.onInitialize)
	hooks.AddOnError(s.onError)

	s.mcp = mcpserver.NewMCPServer(info.Name, info.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithHooks(hooks),
		mcpserver.WithToolHandlerMiddleware(s.track),
	)
	s.mcp.AddTools(tools...)

	s.stdio = mcpserver.NewStdioServer(s.mcp)
	s.stdio.SetErrorLogger(log.New(logWriter{s.log}, "", 0))
	mcpserver.WithWorkerPoolSize(toolWorkers)(s.stdio)
	return s
}

// Serve reads messages until the input reaches EOF, Close is called, or ctx
// is cancelled. It returns nil in the first two cases and ctx.Err() in the
// last. Calls already dispatched keep running; use Close to wait for them.
func (s *Server) Serve(ctx context.Context) error {
	if !s.serving.CompareAndSwap(false, true) {
		return stderrors.New("mcp: server already serving")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Tool calls outlive ctx; only Close or the end of input stops the session.
	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	in := newInput(s.in)
	s.mu.Lock()
	s.cancel, s.input = cancel, in
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		defer cancel()
		s.err = s.stdio.Listen(listenCtx, in, &replyWriter{out: s.out, pending: s.pending})
	}()

	select {
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	case <-in.eof:
		s.log.Debug("input closed")
		return nil
	case <-s.stopped:
		if s.err == nil || stderrors.Is(s.err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp: %w", s.err)
	}
}

// Close stops reading and waits for in-flight tool calls until ctx
// expires. Once the input has reached EOF, queued calls are drained too.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	cancel, in := s.cancel, s.input
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	if !in.closed() {
		cancel()
	}

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mcp: %d tool calls still in flight: %w", s.InFlight(), ctx.Err())
	}
}

// InFlight returns the number of tool calls being handled.
func (s *Server) InFlight() int {
	return int(s.active.Load())
}

// track counts calls, detaches them from session cancellation and routes
// panics to the fault handler.
func (s *Server) track(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (res *mcpgo.CallToolResult, err error) {
		s.active.Add(1)
		defer s.active.Add(-1)
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			s.log.Error("panic while handling tool call", logger.Fields(
				logger.FieldTool, req.Params.Name,
				"panic", fmt.Sprint(r),
				"stack", string(stack),
			))
			s.onFault(r, stack)
			res, err = nil, errors.Internal(fmt.Errorf("panic: %v", r))
		}()
		return next(context.WithoutCancel(ctx), req)
	}
}

func (s *Server) onInitialize(_ context.Context, _ any, req *mcpgo.InitializeRequest, res *mcpgo.InitializeResult) {
	s.log.Info("session initialized", logger.Fields(
		"client", req.Params.ClientInfo.Name,
		"client_version", req.Params.ClientInfo.Version,
		"protocol_version", res.ProtocolVersion,
	))
}

// onError keeps the application error for a failed tools/call so the reply
// carries its code and data. Unknown tools are reported as method not found.
func (s *Server) onError(_ context.Context, id any, method mcpgo.MCPMethod, message any, err error) {
	if method != mcpgo.MethodToolsCall {
		s.log.Debug("request failed", logger.Fields("method", string(method), logger.FieldError, err.Error()))
		return
	}

	appErr, ok := errors.AsAppError(err)
	if !ok && stderrors.Is(err, mcpserver.ErrToolNotFound) {
		var name string
		if req, isCall := message.(*mcpgo.CallToolRequest); isCall {
			name = req.Params.Name
		}
		if name == "" {
			appErr = errors.MissingField("name")
		} else {
			appErr = errors.UnknownTool(name)
			s.log.Warn("unknown tool requested", logger.Fields(logger.FieldTool, name))
		}
		ok = true
	}
	if ok {
		s.pending.put(id, appErr)
	}
}

// input reports when the underlying reader reaches EOF.
type input struct {
	r    io.Reader
	once sync.Once
	eof  chan struct{}
}

func newInput(r io.Reader) *input {
	return &input{r: r, eof: make(chan struct{})}
}

func (in *input) Read(p []byte) (int, error) {
	n, err := in.r.Read(p)
	if stderrors.Is(err, io.EOF) {
		in.once.Do(func() { close(in.eof) })
	}
	return n, err
}

func (in *input) closed() bool {
	select {
	case <-in.eof:
		return true
	default:
		return false
	}
}

// logWriter forwards the stdio server's diagnostics to the logger.
type logWriter struct {
	log *logger.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.log.Warn(strings.TrimSpace(string(p)))
	return len(p), nil
}
