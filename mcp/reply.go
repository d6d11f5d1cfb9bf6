package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/kbukum/assemblyai-mcp/errors"
)

// pendingErrors holds application errors by request id until the error
// reply for that id is written.
type pendingErrors struct {
	mu   sync.Mutex
	byID map[string]*errors.AppError
}

func newPendingErrors() *pendingErrors {
	return &pendingErrors{byID: make(map[string]*errors.AppError)}
}

// idKey keeps numeric and string ids with the same text apart.
func idKey(id any) string {
	return fmt.Sprintf("%T:%v", id, id)
}

func (p *pendingErrors) put(id any, appErr *errors.AppError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID[idKey(id)] = appErr
}

func (p *pendingErrors) take(id any) (*errors.AppError, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := idKey(id)
	appErr, ok := p.byID[key]
	if ok {
		delete(p.byID, key)
	}
	return appErr, ok
}

func (p *pendingErrors) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

var errorMember = []byte(`"error"`)

// replyWriter rewrites error replies that have a pending application error
// so they carry its code, message and data. The stdio server writes each
// message with one Write call; everything else passes through untouched.
type replyWriter struct {
	out     io.Writer
	pending *pendingErrors
}

func (w *replyWriter) Write(p []byte) (int, error) {
	if !bytes.Contains(p, errorMember) {
		return w.out.Write(p)
	}

	var reply struct {
		ID    any             `json:"id"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(p, &reply); err != nil || len(reply.Error) == 0 {
		return w.out.Write(p)
	}
	appErr, ok := w.pending.take(reply.ID)
	if !ok {
		return w.out.Write(p)
	}

	line, err := json.Marshal(mcpgo.JSONRPCError{
		JSONRPC: mcpgo.JSONRPC_VERSION,
		ID:      mcpgo.NewRequestId(reply.ID),
		Error:   appErr.ToRPC(),
	})
	if err != nil {
		return w.out.Write(p)
	}
	if _, err := w.out.Write(append(line, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}
