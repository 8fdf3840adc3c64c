package main

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/input"
)

// keyBindings maps ImGui keys to the keys scenes react to.
var keyBindings = []struct {
	key   input.Key
	imgui imgui.Key
}{
	{input.KeyW, imgui.KeyW},
	{input.KeyA, imgui.KeyA},
	{input.KeyS, imgui.KeyS},
	{input.KeyD, imgui.KeyD},
	{input.KeySpace, imgui.KeySpace},
	{input.KeyX, imgui.KeyX},
	{input.KeyEscape, imgui.KeyEscape},
	{input.KeyTab, imgui.KeyTab},
	{input.KeyP, imgui.KeyP},
	{input.KeyF5, imgui.KeyF5},
}

// pollInput copies ImGui's keyboard and mouse state into the scene input and
// marks whatever the UI is using as captured.
func (app *App) pollInput() {
	in := app.input
	in.BeginFrame()
	for _, b := range keyBindings {
		in.SetKey(b.key, imgui.IsKeyDown(b.imgui))
	}

	io := imgui.CurrentIO()
	mousePos := imgui.MousePos()
	dragging := imgui.IsMouseDragging(imgui.MouseButtonLeft)
	in.SetMouseButton(input.MouseLeft, dragging)
	if dragging {
		in.MoveMouse(mousePos.X, mousePos.Y, mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
	}
	in.Scroll(io.MouseWheel())
	app.lastMousePos = mousePos

	in.SetCapture(uiCapture(app.viewHovered, io.WantCaptureKeyboard(), io.WantCaptureMouse()))
}

// uiCapture decides which devices the scene must not see. The scene view is
// itself an ImGui window, so ImGui's mouse request only counts off the view.
// Keyboard input goes to the scene while the cursor is over the view and no
// widget holds focus.
func uiCapture(viewHovered, wantKeyboard, wantMouse bool) (keyboard, mouse bool) {
	return wantKeyboard || !viewHovered, wantMouse && !viewHovered
}

// renderViewport draws the scene into the offscreen view and shows it in a
// window at the given rectangle.
func (app *App) renderViewport(x, y, width, height, dt float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse |
		imgui.WindowFlagsNoBringToFrontOnFocus

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneView", nil, flags) {
		avail := imgui.ContentRegionAvail()
		scale := imgui.CurrentIO().DisplayFramebufferScale()
		pixelsW, pixelsH := int(avail.X*scale.X), int(avail.Y*scale.Y)
		if pixelsW > 0 && pixelsH > 0 && app.view.Resize(pixelsW, pixelsH) {
			app.renderer.Resize(pixelsW, pixelsH)
			if err := app.session.Resize(pixelsW, pixelsH); err != nil {
				app.log.Warn("resizing scene", zap.Error(err))
			}
		}

		app.pollInput()
		if err := app.session.Update(dt, app.input); err != nil {
			app.log.Error("updating scene", zap.Error(err))
		}
		app.drawScene()

		origin := imgui.CursorScreenPos()
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.view.ColorTexture()))
		imgui.ImageWithBgV(
			*texRef,
			avail,
			imgui.NewVec2(0, 1), // OpenGL rows are bottom-up
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0.1, 0.1, 0.12, 1.0),
			imgui.NewVec4(1, 1, 1, 1),
		)
		app.viewHovered = imgui.IsItemHovered()
		if app.viewHovered && imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
			app.pick(origin, avail)
		}

		app.updateOverlay(dt)
		app.inspector.Overlay.Render(x+10, y+10)
	}
	imgui.End()
	imgui.PopStyleVar()
}

// pick selects the entity under the cursor.
func (app *App) pick(origin, size imgui.Vec2) {
	sc := app.session.Scene()
	if sc == nil {
		return
	}
	mouse := imgui.MousePos()
	if i := sc.Pick(mouse.X-origin.X, mouse.Y-origin.Y, size.X, size.Y); i >= 0 {
		app.inspector.Select(i)
		app.log.Debug("picked entity", zap.String("name", sc.Entities()[i].Name))
	}
}

func (app *App) drawScene() {
	restore := app.view.BindWithViewport()
	defer restore()

	app.shaders.Bind()
	app.renderer.Restore()
	app.renderer.Begin()
	if err := app.session.Draw(app.renderer); err != nil {
		app.log.Error("drawing scene", zap.Error(err))
	}
	app.renderer.End()

	if app.capture {
		app.capture = false
		w, h := app.view.Size()
		path, err := app.shots.CaptureFromPixels(app.view.ReadPixels(), w, h)
		if err != nil {
			app.inspector.SetStatus("Screenshot failed: " + err.Error())
			return
		}
		app.inspector.SetStatus("Saved " + path)
	}
}

func (app *App) updateOverlay(dt float32) {
	o := app.inspector.Overlay
	o.Update(float64(dt) * 1000)
	o.DrawCalls, o.Triangles = app.renderer.Stats()

	sc := app.session.Scene()
	if sc == nil {
		o.SceneName, o.Camera, o.Entities, o.Lights = "-", "-", 0, 0
		return
	}
	o.SceneName = sc.Name
	o.Camera = sc.ActiveCamera().Name()
	o.Entities = len(sc.Entities())
	o.Lights = sc.Lights().Len()
}
