// Package ui provides the inspector's ImGui panels.
package ui

import (
	"fmt"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Overlay is a corner panel with frame timing and render counters.
type Overlay struct {
	fps           float64
	frameTime     float64 // ms
	fpsUpdateTime float64 // seconds since the last FPS sample
	frameAccum    int

	memStats      runtime.MemStats
	memUpdateTime float64

	// Set by the owner before Render.
	SceneName string
	Camera    string
	Entities  int
	Lights    int
	DrawCalls int
	Triangles int

	ShowRender bool
	ShowMemory bool
	Enabled    bool
}

// NewOverlay creates an enabled overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		ShowRender: true,
		Enabled:    true,
	}
}

// Update accumulates one frame of deltaMs milliseconds.
func (o *Overlay) Update(deltaMs float64) {
	o.frameTime = deltaMs
	o.frameAccum++
	o.fpsUpdateTime += deltaMs / 1000.0

	if o.fpsUpdateTime >= 0.5 {
		o.fps = float64(o.frameAccum) / o.fpsUpdateTime
		o.frameAccum = 0
		o.fpsUpdateTime = 0
	}

	o.memUpdateTime += deltaMs / 1000.0
	if o.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&o.memStats)
		o.memUpdateTime = 0
	}
}

// FPS returns the last sampled frame rate.
func (o *Overlay) FPS() float64 {
	return o.fps
}

// Render draws the overlay at (x, y).
func (o *Overlay) Render(x, y float32) {
	if !o.Enabled {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(230, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##Overlay", nil, flags) {
		imgui.TextColored(fpsColor(o.fps), fmt.Sprintf("FPS: %.1f", o.fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", o.frameTime))

		imgui.Separator()
		imgui.Text(fmt.Sprintf("Scene: %s", o.SceneName))
		imgui.Text(fmt.Sprintf("Camera: %s", o.Camera))
		imgui.Text(fmt.Sprintf("Entities: %d  Lights: %d", o.Entities, o.Lights))

		if o.ShowRender {
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Draw Calls: %d", o.DrawCalls))
			imgui.Text(fmt.Sprintf("Triangles: %d", o.Triangles))
		}
		if o.ShowMemory {
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Alloc: %s", formatBytes(int64(o.memStats.Alloc))))
			imgui.Text(fmt.Sprintf("Sys: %s", formatBytes(int64(o.memStats.Sys))))
			imgui.Text(fmt.Sprintf("GC: %d", o.memStats.NumGC))
		}
	}
	imgui.End()

	imgui.PopStyleVar()
}

// RenderSettings draws the overlay toggles.
func (o *Overlay) RenderSettings() {
	if imgui.CollapsingHeaderTreeNodeFlagsV("Overlay", imgui.TreeNodeFlagsNone) {
		imgui.Checkbox("Enabled##overlay", &o.Enabled)
		imgui.Checkbox("Render Stats", &o.ShowRender)
		imgui.Checkbox("Memory", &o.ShowMemory)
	}
}

func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 60:
		return imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	default:
		return imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	}
}

func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
