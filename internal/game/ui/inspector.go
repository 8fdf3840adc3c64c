package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/google/uuid"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/game/entity"
	"github.com/Faultbox/prism/internal/game/scene"
	"github.com/Faultbox/prism/pkg/math"
)

// Actions are the commands the inspector menu can trigger.
type Actions struct {
	Open       func()
	Reload     func()
	Screenshot func()
	Quit       func()
}

// Inspector edits a live scene. Every change goes through the objects'
// setters, so derived matrices are rebuilt on the next read.
type Inspector struct {
	Scene   *scene.Scene
	Overlay *Overlay
	Actions Actions

	selected uuid.UUID
	status   string
}

// NewInspector creates an inspector with its own overlay.
func NewInspector(actions Actions) *Inspector {
	return &Inspector{
		Overlay: NewOverlay(),
		Actions: actions,
	}
}

// SetStatus shows msg in the inspector footer.
func (in *Inspector) SetStatus(msg string) {
	in.status = msg
}

// SetScene swaps the scene being edited. The selection is kept by entity ID,
// so a reloaded scene still shows the same entity.
func (in *Inspector) SetScene(s *scene.Scene) {
	in.Scene = s
}

// Select makes entity i the one shown in the entity editor. Out of range i is ignored.
func (in *Inspector) Select(i int) {
	if in.Scene == nil {
		return
	}
	if entities := in.Scene.Entities(); i >= 0 && i < len(entities) {
		in.selected = entities[i].ID
	}
}

// selectedIndex resolves the selection, falling back to the first entity.
func (in *Inspector) selectedIndex() int {
	entities := in.Scene.Entities()
	if len(entities) == 0 {
		return -1
	}
	i := in.Scene.EntityIndex(in.selected)
	if i < 0 {
		i = 0
		in.selected = entities[0].ID
	}
	return i
}

// RenderMenu draws the main menu bar.
func (in *Inspector) RenderMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Scene...") && in.Actions.Open != nil {
			in.Actions.Open()
		}
		if imgui.MenuItemBool("Reload") && in.Actions.Reload != nil {
			in.Actions.Reload()
		}
		if imgui.MenuItemBool("Screenshot") && in.Actions.Screenshot != nil {
			in.Actions.Screenshot()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") && in.Actions.Quit != nil {
			in.Actions.Quit()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

// Render draws the inspector window at the given rectangle.
func (in *Inspector) Render(x, y, width, height float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	if imgui.BeginV("Inspector", nil, flags) {
		if in.Scene == nil {
			imgui.TextDisabled("No scene loaded")
		} else {
			in.renderSceneState()
			in.renderCameras()
			in.renderEntities()
			in.renderLights()
		}
		if in.Overlay != nil {
			in.Overlay.RenderSettings()
		}
		if in.status != "" {
			imgui.Separator()
			imgui.TextWrapped(in.status)
		}
	}
	imgui.End()
}

func (in *Inspector) renderSceneState() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Scene", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	st := &in.Scene.State
	imgui.Text(fmt.Sprintf("%s  (%s)", in.Scene.Name, in.Scene.Phase()))
	imgui.Text(fmt.Sprintf("Frame %d  %.1fs", st.Frame, st.Elapsed))

	clearColor := arr4(st.ClearColor)
	if imgui.ColorEdit4("Background", &clearColor) {
		st.ClearColor = vec4(clearColor)
	}
	ambient := arr3(st.Ambient)
	if imgui.ColorEdit3("Ambient", &ambient) {
		st.Ambient = vec3(ambient)
	}
	imgui.Checkbox("Spin", &st.Spin)
	if in.Scene.Sky() != nil {
		imgui.SameLine()
		imgui.Checkbox("Sky", &st.ShowSky)
	}
}

func (in *Inspector) renderCameras() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Cameras", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	for i, c := range in.Scene.Cameras() {
		active := i == in.Scene.State.ActiveCamera
		if imgui.SelectableBoolV(fmt.Sprintf("%s##camera%d", c.Name(), i), active, 0, imgui.NewVec2(0, 0)) {
			// Index is in range, so this cannot fail.
			_ = in.Scene.SetActiveCamera(i)
		}
	}

	c := in.Scene.ActiveCamera()
	if c == nil {
		return
	}
	imgui.Separator()
	editCamera(c)
}

func editCamera(c *camera.Camera) {
	t := c.Transform()
	pos := arr3(t.Position())
	if imgui.DragFloat3("Position##camera", &pos) {
		t.SetPosition(vec3(pos))
		c.UpdateViewMatrix()
	}
	rot := degrees3(t.Rotation())
	if imgui.DragFloat3("Rotation##camera", &rot) {
		t.SetRotation(radians3(rot))
		c.UpdateViewMatrix()
	}

	ortho := c.ProjectionMode() == camera.Orthographic
	if imgui.Checkbox("Orthographic", &ortho) {
		if ortho {
			c.SetProjectionMode(camera.Orthographic)
		} else {
			c.SetProjectionMode(camera.Perspective)
		}
	}
	if ortho {
		width := c.OrthographicWidth()
		if imgui.SliderFloat("Width", &width, 0.5, 100) {
			_ = c.SetOrthographicWidth(width)
		}
	} else {
		fov := c.FieldOfView() * toDegrees
		if imgui.SliderFloat("FOV", &fov, 10, 150) {
			_ = c.SetFieldOfView(fov * toRadians)
		}
	}

	near, far := c.NearClip(), c.FarClip()
	changed := imgui.SliderFloat("Near", &near, 0.001, 10)
	changed = imgui.SliderFloat("Far", &far, 1, 1000) || changed
	if changed {
		// Invalid pairs are rejected and the old planes kept.
		_ = c.SetClipPlanes(near, far)
	}

	speed := c.MoveSpeed()
	if imgui.SliderFloat("Move Speed", &speed, 0.1, 50) {
		c.SetMoveSpeed(speed)
	}
}

func (in *Inspector) renderEntities() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Entities", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	entities := in.Scene.Entities()
	if len(entities) == 0 {
		imgui.TextDisabled("No entities")
		return
	}
	selected := in.selectedIndex()
	for i, e := range entities {
		if imgui.SelectableBoolV(fmt.Sprintf("%s##%s", e.Name, e.ID), i == selected, 0, imgui.NewVec2(0, 0)) {
			in.selected = e.ID
		}
	}

	e := entities[selected]
	imgui.Separator()
	editEntity(e)

	if imgui.Button("Duplicate") {
		if err := in.duplicate(e); err != nil {
			in.status = err.Error()
		}
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		if err := in.Scene.RemoveEntity(selected); err != nil {
			in.status = err.Error()
		}
	}
}

// duplicate adds a copy of e to the scene and selects it.
func (in *Inspector) duplicate(e *entity.Entity) error {
	clone, err := e.Clone(e.Name + " copy")
	if err != nil {
		return err
	}
	if err := in.Scene.AddEntity(clone); err != nil {
		clone.Release()
		return err
	}
	in.selected = clone.ID
	return nil
}

func editEntity(e *entity.Entity) {
	t := e.Transform()
	pos := arr3(t.Position())
	if imgui.DragFloat3("Position", &pos) {
		t.SetPosition(vec3(pos))
	}
	rot := degrees3(t.Rotation())
	if imgui.DragFloat3("Rotation", &rot) {
		t.SetRotation(radians3(rot))
	}
	scale := arr3(t.Scale())
	if imgui.DragFloat3("Scale", &scale) {
		t.SetScale(vec3(scale))
	}
	spin := degrees3(e.Spin)
	if imgui.DragFloat3("Spin", &spin) {
		e.Spin = radians3(spin)
	}

	m := e.Material()
	imgui.Text(fmt.Sprintf("Mesh: %s  Material: %s", e.Mesh().Name(), m.Name()))
	tint := arr4(m.Tint())
	if imgui.ColorEdit4("Tint", &tint) {
		m.SetTint(vec4(tint))
	}
	roughness := m.Roughness()
	if imgui.SliderFloat("Roughness", &roughness, 0, 1) {
		m.SetRoughness(roughness)
	}
	uvScale := arr2(m.UVScale())
	if imgui.DragFloat2("UV Scale", &uvScale) {
		m.SetUVScale(vec2(uvScale))
	}
	uvOffset := arr2(m.UVOffset())
	if imgui.DragFloat2("UV Offset", &uvOffset) {
		m.SetUVOffset(vec2(uvOffset))
	}
}

func (in *Inspector) renderLights() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Lights", imgui.TreeNodeFlagsNone) {
		return
	}
	lights := in.Scene.Lights()
	for i := 0; i < lights.Len(); i++ {
		f := fieldsOf(lights.At(i))
		label := fmt.Sprintf("%s %d##light%d", f.Type, i, i)
		if !imgui.TreeNodeExStrV(label, imgui.TreeNodeFlagsNone) {
			continue
		}
		if editLight(&f, i) {
			lights.Set(i, f.light())
		}
		imgui.TreePop()
	}

	if lights.Len() < lighting.MaxLights {
		if imgui.Button("Add Point Light") {
			in.addLight(lighting.Point{Range: 10, Color: math.Vec3One, Intensity: 1})
		}
	}
}

func (in *Inspector) addLight(l lighting.Light) {
	if err := in.Scene.AddLight(l); err != nil {
		in.status = err.Error()
	}
}

func editLight(f *lightFields, i int) bool {
	id := func(name string) string { return fmt.Sprintf("%s##%d", name, i) }

	changed := imgui.ColorEdit3(id("Color"), &f.Color)
	changed = imgui.SliderFloat(id("Intensity"), &f.Intensity, 0, 10) || changed
	if f.Type != lighting.TypeDirectional {
		changed = imgui.DragFloat3(id("Position"), &f.Position) || changed
		changed = imgui.SliderFloat(id("Range"), &f.Range, 0, 100) || changed
	}
	if f.Type != lighting.TypePoint {
		changed = imgui.DragFloat3(id("Direction"), &f.Direction) || changed
	}
	if f.Type == lighting.TypeSpot {
		changed = imgui.SliderFloat(id("Inner"), &f.InnerAngle, 0, 89) || changed
		changed = imgui.SliderFloat(id("Outer"), &f.OuterAngle, 0, 89) || changed
	}
	changed = imgui.Checkbox(id("Shadows"), &f.Shadows) || changed
	return changed
}
