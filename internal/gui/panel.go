package gui

import "github.com/inkyblackness/imgui-go/v4"

const (
	PanelTitle   = "Transparent Window"
	PanelHeading = "imgui"
	SliderLabel  = "offset"

	SliderMin = -200
	SliderMax = 200

	panelWidth = 300
	panelAlpha = 0.6
)

// Panel is the overlay window. Offset is the slider value in pixels; the
// scene reads it every frame.
type Panel struct {
	Open   bool
	Offset int32
}

func NewPanel() *Panel {
	return &Panel{Open: true}
}

// Build emits the panel's widgets for the current frame. A closed panel
// emits nothing and keeps its last offset.
func (p *Panel) Build() {
	if !p.Open {
		return
	}

	imgui.SetNextWindowBgAlpha(panelAlpha)
	imgui.SetNextWindowSizeV(imgui.Vec2{X: panelWidth}, imgui.ConditionFirstUseEver)
	if imgui.BeginV(PanelTitle, &p.Open, 0) {
		imgui.Text(PanelHeading)
		imgui.Separator()
		imgui.SliderInt(SliderLabel, &p.Offset, SliderMin, SliderMax)
	}
	imgui.End()

	p.Offset = clampOffset(p.Offset)
}

func clampOffset(offset int32) int32 {
	if offset < SliderMin {
		return SliderMin
	}
	if offset > SliderMax {
		return SliderMax
	}
	return offset
}
