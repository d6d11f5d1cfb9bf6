package tools

import (
	"encoding/json"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/kbukum/assemblyai-mcp/validation"
)

type entry struct {
	desc   Descriptor
	tool   mcpgo.Tool
	schema *validation.Schema
	handle handlerFunc
}

// Registry is the fixed, ordered set of tools. It is built once and never
// changes, so it is safe to share between goroutines.
type Registry struct {
	entries []entry
	index   map[string]int
}

// NewRegistry builds the registry, compiles every input schema and renders
// the advertised tool definitions.
func NewRegistry() (*Registry, error) {
	defs := []struct {
		desc   Descriptor
		handle handlerFunc
	}{
		{transcribeAudioDescriptor(), transcribeAudio},
		{getTranscriptDescriptor(), getTranscript},
		{transcribeRealtimeDescriptor(), transcribeRealtime},
	}

	r := &Registry{
		entries: make([]entry, 0, len(defs)),
		index:   make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		schema, err := validation.CompileSchema(d.desc.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", d.desc.Name, err)
		}
		tool, err := toolFor(d.desc)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", d.desc.Name, err)
		}
		r.index[d.desc.Name] = len(r.entries)
		r.entries = append(r.entries, entry{desc: d.desc, tool: tool, schema: schema, handle: d.handle})
	}
	return r, nil
}

// List returns every descriptor in advertised order. The slice is a copy;
// the schemas are shared and must not be modified.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.desc
	}
	return out
}

// Tools returns the advertised tool definitions in registry order.
func (r *Registry) Tools() []mcpgo.Tool {
	out := make([]mcpgo.Tool, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.tool
	}
	return out
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return Descriptor{}, false
	}
	return e.desc, true
}

// Names returns the tool names in advertised order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.desc.Name
	}
	return names
}

func (r *Registry) lookup(name string) (*entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return &r.entries[i], true
}

func toolFor(d Descriptor) (mcpgo.Tool, error) {
	raw, err := json.Marshal(d.InputSchema)
	if err != nil {
		return mcpgo.Tool{}, fmt.Errorf("encode input schema: %w", err)
	}
	tool := mcpgo.NewToolWithRawSchema(d.Name, d.Description, raw)
	tool.Annotations = mcpgo.ToolAnnotation{
		ReadOnlyHint:  mcpgo.ToBoolPtr(d.ReadOnly),
		OpenWorldHint: mcpgo.ToBoolPtr(true),
	}
	return tool, nil
}
