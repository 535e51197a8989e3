package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/internal/session"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/picking"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// ModelData holds the loaded model and its GPU resources
type ModelData struct {
	model            *stl.Model
	report           *analysis.Report
	picker           *picking.Picker
	mesh             rl.Mesh
	material         rl.Material
	hasMesh          bool
	avgVertexSpacing float32 // Scales marker size
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showHelp      bool
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	dragging     bool
}

// FrameState is the cached frame the scheduler renders into
type FrameState struct {
	target     rl.RenderTexture2D
	width      int32
	height     int32
	clearColor rl.Color
}

// FileWatchState holds reload state. reloads is written by the watcher
// goroutine and drained on the main thread.
type FileWatchState struct {
	reloads     chan session.LoadResult
	status      string
	statusUntil time.Time
	statusIsErr bool
}

// setStatus shows a transient message in the top-right corner
func (f *FileWatchState) setStatus(msg string, isErr bool, d time.Duration) {
	f.status = msg
	f.statusIsErr = isErr
	f.statusUntil = time.Now().Add(d)
}
