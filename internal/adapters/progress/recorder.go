package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
)

// Recorder records every phase as a completed progrock vertex and forwards events to next.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	next ports.Reporter

	// tape and trace are set when phases are recorded for a closing timeline.
	tape    *progrock.Tape
	trace   io.Writer
	mu      sync.Mutex
	verbose bool
	json    bool
}

var _ ports.Reporter = (*Recorder)(nil)

// NewRecorder creates a Recorder writing to w. A nil next drops forwarded events.
func NewRecorder(w progrock.Writer, next ports.Reporter) *Recorder {
	if next == nil {
		next = Silent{}
	}
	return &Recorder{w: w, rec: progrock.NewRecorder(w), next: next}
}

// NewTapeRecorder creates a Recorder that keeps its phases on a tape. In verbose mode, Close
// writes the recorded phases to trace.
func NewTapeRecorder(trace io.Writer, next ports.Reporter) *Recorder {
	tape := progrock.NewTape()
	r := NewRecorder(tape, next)
	r.tape = tape
	r.trace = trace
	return r
}

// SetVerbose enables the closing timeline.
func (r *Recorder) SetVerbose(enable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = enable
}

// SetJSON suppresses the closing timeline, which is not structured output.
func (r *Recorder) SetJSON(enable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.json = enable
}

// OnResolveComplete implements ports.ResolveLogger.
func (r *Recorder) OnResolveComplete(count int, elapsed time.Duration) {
	r.vertex("resolve", summaryLine("Resolved", count, elapsed), nil)
	r.next.OnResolveComplete(count, elapsed)
}

// OnAudit implements ports.InstallLogger.
func (r *Recorder) OnAudit(count int, elapsed time.Duration) {
	r.vertex("audit", summaryLine("Audited", count, elapsed), nil)
	r.next.OnAudit(count, elapsed)
}

// OnUninstall implements ports.InstallLogger.
func (r *Recorder) OnUninstall(removed []domain.InstalledDistribution, elapsed time.Duration) {
	lines := make([]string, 0, len(removed))
	for _, d := range removed {
		lines = append(lines, "- "+d.Name.String()+"=="+d.Version)
	}
	r.vertex("uninstall", summaryLine("Uninstalled", len(removed), elapsed), lines)
	r.next.OnUninstall(removed, elapsed)
}

// OnInstall implements ports.InstallLogger.
func (r *Recorder) OnInstall(installed []domain.Distribution, elapsed time.Duration) {
	lines := make([]string, 0, len(installed))
	for _, d := range installed {
		lines = append(lines, "+ "+d.String())
	}
	r.vertex("install", summaryLine("Installed", len(installed), elapsed), lines)
	r.next.OnInstall(installed, elapsed)
}

func (r *Recorder) vertex(name, summary string, lines []string) {
	v := r.rec.Vertex(digest.FromString(name+"@"+time.Now().String()), summary)
	for _, l := range lines {
		_, _ = fmt.Fprintln(v.Stdout(), l)
	}
	v.Done(nil)
}

// Close closes the underlying writer, then renders the timeline when it is enabled.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	show := r.verbose && !r.json
	r.mu.Unlock()
	if !show || r.tape == nil || r.trace == nil {
		return nil
	}
	return r.renderTimeline()
}

// renderTimeline writes one line per recorded phase, in recording order.
func (r *Recorder) renderTimeline() error {
	vertices := r.tape.Vertices()
	if len(vertices) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(r.trace, "Phases (%d):\n", len(vertices)); err != nil {
		return err
	}
	for i, v := range vertices {
		status := "done"
		if v.Error != nil {
			status = "failed: " + v.GetError()
		}
		if _, err := fmt.Fprintf(r.trace, "  %d. %s [%s]\n", i+1, v.Name, status); err != nil {
			return err
		}
	}
	return nil
}
