package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orbits/internal/capture"
	"github.com/litescript/ls-orbits/internal/state"
)

// Export is the JSON form of a world.
type Export struct {
	Frame       uint64           `json:"frame"`
	Camera      r3.Vec           `json:"camera"`
	Preset      int              `json:"preset"`
	Pressed     bool             `json:"pressed"`
	MaxAttached int              `json:"max_attached"`
	Capture     capture.Snapshot `json:"capture"`
	Events      []state.Event    `json:"events"`
	Captures    int              `json:"captures_total"`
}

// Export copies the current world state.
func (w *World) Export() *Export {
	return &Export{
		Frame:       w.frame,
		Camera:      w.Camera.Position,
		Preset:      w.selected,
		Pressed:     w.pressed,
		MaxAttached: w.cfg.Capture.MaxAttached,
		Capture:     w.Capture.Snapshot(),
		Events:      w.Journal.Events(),
		Captures:    w.Journal.TotalOf(state.EventCapture),
	}
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummary writes a plain-text report of the export.
func (e *Export) WriteSummary(w io.Writer) {
	c := e.Capture
	fmt.Fprintf(w, "Orbits @ frame %d (t=%s)\n", e.Frame, c.Now.Round(time.Millisecond))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Captured %d/%d  active orbit %d  drift %.1f  resetting %t\n",
		c.AttachedCount, e.MaxAttached, c.ActiveOrbitIndex, c.Drift, c.Resetting)
	fmt.Fprintf(w, "Total captures: %d  pending tasks: %d\n", e.Captures, c.PendingTasks)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s %-6s %-8s %-8s\n", "Planet", "Orbit", "Angle", "Ball")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, p := range c.Planets {
		fmt.Fprintf(w, "%-6d %-6d %-8.2f %-8t\n", p.ID, p.OrbitIndex, p.Angle, p.HasAttached)
	}
	if len(c.Planets) == 0 {
		fmt.Fprintln(w, "No planets")
	}

	if len(e.Events) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent events:")
		start := 0
		if len(e.Events) > 10 {
			start = len(e.Events) - 10
		}
		for _, ev := range e.Events[start:] {
			fmt.Fprintf(w, "  %8s  %-8s orbit %d\n", ev.At.Round(time.Millisecond), ev.Type, ev.Orbit)
		}
	}
}
