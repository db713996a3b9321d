// Package sdlplatform feeds SDL input to ImGui.
package sdlplatform

import (
	"math"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	mouseButtonPrimary = iota
	mouseButtonSecondary
	mouseButtonTertiary
	mouseButtonCount
)

// Platform tracks the input state ImGui needs between frames.
type Platform struct {
	io     imgui.IO
	window *sdl.Window

	buttonsDown [mouseButtonCount]bool
}

func New(io imgui.IO, window *sdl.Window) *Platform {
	p := &Platform{
		io:     io,
		window: window,
	}
	p.setKeyMapping()

	return p
}

// ProcessEvent forwards an event to ImGui and reports whether the GUI
// captured it.
func (p *Platform) ProcessEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.MouseWheelEvent:
		var deltaX, deltaY float32
		if e.X > 0 {
			deltaX++
		} else if e.X < 0 {
			deltaX--
		}
		if e.Y > 0 {
			deltaY++
		} else if e.Y < 0 {
			deltaY--
		}
		p.io.AddMouseWheelDelta(deltaX, deltaY)
		return p.io.WantCaptureMouse()

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			if index, known := buttonIndex(e.Button); known {
				p.buttonsDown[index] = true
			}
		}
		return p.io.WantCaptureMouse()

	case *sdl.MouseMotionEvent:
		return p.io.WantCaptureMouse()

	case *sdl.TextInputEvent:
		p.io.AddInputCharacters(e.GetText())
		return p.io.WantCaptureKeyboard()

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			p.io.KeyPress(int(e.Keysym.Scancode))
		} else {
			p.io.KeyRelease(int(e.Keysym.Scancode))
		}
		p.updateKeyModifier()
		return p.io.WantCaptureKeyboard()
	}

	return false
}

// NewFrame samples the mouse before ImGui starts a frame. Clicks shorter
// than a frame still register through the pressed flags set by ProcessEvent.
func (p *Platform) NewFrame() {
	x, y, state := sdl.GetMouseState()
	if p.window.GetFlags()&sdl.WINDOW_INPUT_FOCUS != 0 {
		windowW, windowH := p.window.GetSize()
		drawableW, drawableH := p.window.VulkanGetDrawableSize()
		scaleX, scaleY := mouseScale(windowW, windowH, drawableW, drawableH)
		p.io.SetMousePosition(imgui.Vec2{X: float32(x) * scaleX, Y: float32(y) * scaleY})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i, button := range []uint32{sdl.BUTTON_LEFT, sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE} {
		p.io.SetMouseButtonDown(i, p.buttonsDown[i] || (state&sdl.Button(button)) != 0)
		p.buttonsDown[i] = false
	}
}

// mouseScale converts window coordinates, which SDL reports the mouse in, to
// drawable pixels, which the GUI is laid out in. They differ on HiDPI displays.
func mouseScale(windowW, windowH, drawableW, drawableH int32) (float32, float32) {
	if windowW <= 0 || windowH <= 0 || drawableW <= 0 || drawableH <= 0 {
		return 1, 1
	}
	return float32(drawableW) / float32(windowW), float32(drawableH) / float32(windowH)
}

func buttonIndex(button uint8) (int, bool) {
	switch uint32(button) {
	case sdl.BUTTON_LEFT:
		return mouseButtonPrimary, true
	case sdl.BUTTON_RIGHT:
		return mouseButtonSecondary, true
	case sdl.BUTTON_MIDDLE:
		return mouseButtonTertiary, true
	}
	return 0, false
}

func (p *Platform) updateKeyModifier() {
	modState := uint32(sdl.GetModState())
	mapModifier := func(leftMask uint32, leftKey int, rightMask uint32, rightKey int) (int, int) {
		left, right := -1, -1
		if modState&leftMask != 0 {
			left = leftKey
		}
		if modState&rightMask != 0 {
			right = rightKey
		}
		return left, right
	}

	p.io.KeyShift(mapModifier(uint32(sdl.KMOD_LSHIFT), int(sdl.SCANCODE_LSHIFT), uint32(sdl.KMOD_RSHIFT), int(sdl.SCANCODE_RSHIFT)))
	p.io.KeyCtrl(mapModifier(uint32(sdl.KMOD_LCTRL), int(sdl.SCANCODE_LCTRL), uint32(sdl.KMOD_RCTRL), int(sdl.SCANCODE_RCTRL)))
	p.io.KeyAlt(mapModifier(uint32(sdl.KMOD_LALT), int(sdl.SCANCODE_LALT), uint32(sdl.KMOD_RALT), int(sdl.SCANCODE_RALT)))
	p.io.KeySuper(mapModifier(uint32(sdl.KMOD_LGUI), int(sdl.SCANCODE_LGUI), uint32(sdl.KMOD_RGUI), int(sdl.SCANCODE_RGUI)))
}

func (p *Platform) setKeyMapping() {
	keys := map[int]int{
		imgui.KeyTab:        int(sdl.SCANCODE_TAB),
		imgui.KeyLeftArrow:  int(sdl.SCANCODE_LEFT),
		imgui.KeyRightArrow: int(sdl.SCANCODE_RIGHT),
		imgui.KeyUpArrow:    int(sdl.SCANCODE_UP),
		imgui.KeyDownArrow:  int(sdl.SCANCODE_DOWN),
		imgui.KeyPageUp:     int(sdl.SCANCODE_PAGEUP),
		imgui.KeyPageDown:   int(sdl.SCANCODE_PAGEDOWN),
		imgui.KeyHome:       int(sdl.SCANCODE_HOME),
		imgui.KeyEnd:        int(sdl.SCANCODE_END),
		imgui.KeyInsert:     int(sdl.SCANCODE_INSERT),
		imgui.KeyDelete:     int(sdl.SCANCODE_DELETE),
		imgui.KeyBackspace:  int(sdl.SCANCODE_BACKSPACE),
		imgui.KeySpace:      int(sdl.SCANCODE_SPACE),
		imgui.KeyEnter:      int(sdl.SCANCODE_RETURN),
		imgui.KeyEscape:     int(sdl.SCANCODE_ESCAPE),
		imgui.KeyA:          int(sdl.SCANCODE_A),
		imgui.KeyC:          int(sdl.SCANCODE_C),
		imgui.KeyV:          int(sdl.SCANCODE_V),
		imgui.KeyX:          int(sdl.SCANCODE_X),
		imgui.KeyY:          int(sdl.SCANCODE_Y),
		imgui.KeyZ:          int(sdl.SCANCODE_Z),
	}

	for imguiKey, nativeKey := range keys {
		p.io.KeyMap(imguiKey, nativeKey)
	}
}
