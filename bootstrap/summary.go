package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/assemblyai-mcp/component"
)

// Summary collects what the process brought up and prints it once startup
// completes. Output goes to stderr; stdout belongs to the protocol stream.
type Summary struct {
	serviceName     string
	version         string
	transport       string
	startupDuration time.Duration
	tools           []string
}

// NewSummary creates a new startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetTransport records how the process talks to its host, e.g. "mcp stdio".
func (s *Summary) SetTransport(t string) {
	s.transport = t
}

// TrackTool records an advertised tool.
func (s *Summary) TrackTool(name string) {
	s.tools = append(s.tools, name)
}

// Tools returns the tracked tool names.
func (s *Summary) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Write prints the summary, including live health from registry, to w.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())
	if s.transport != "" {
		fmt.Fprintf(w, "   transport: %s\n", s.transport)
	}
	fmt.Fprintln(w)

	var descs []component.Description
	if registry != nil {
		descs = registry.Descriptions()
	}
	if len(descs) > 0 {
		fmt.Fprintf(w, "📦 Components\n")
		for i, d := range descs {
			fmt.Fprintf(w, "   %s %s [%s] %s\n", branch(i, len(descs)), d.Name, d.Type, d.Details)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "   └── No components registered\n\n")
	}

	if len(s.tools) > 0 {
		fmt.Fprintf(w, "🛠  Tools (%d)\n", len(s.tools))
		for i, t := range s.tools {
			fmt.Fprintf(w, "   %s %s\n", branch(i, len(s.tools)), t)
		}
		fmt.Fprintln(w)
	}

	if registry == nil {
		return
	}
	results := registry.HealthAll(ctx)
	if len(results) == 0 {
		return
	}
	healthy := 0
	fmt.Fprintf(w, "🏥 Health Check\n")
	for i, h := range results {
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(results)), healthIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		if h.Status == component.StatusHealthy {
			healthy++
		}
	}
	if healthy == len(results) {
		fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n\n", healthy, len(results))
	} else {
		fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n\n", healthy, len(results))
	}
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
