package game

// audioInput is one frame of input relevant to the sound button.
type audioInput struct {
	pressed  bool // left button went down this frame
	released bool // left button went up this frame
	hovered  bool // cursor is over the sound button
	anyKey   bool // some key went down this frame
	muteKey  bool // the mute shortcut went down this frame
}

// audioRoute is what a frame of input asks the unlocker to do.
type audioRoute struct {
	toggle bool // flip sound from the button or the shortcut
	unlock bool // plain unlocking gesture
	armed  bool // a press started on the button and may still toggle
}

// routeAudioInput decides what a frame of input does to the background audio.
// armed carries over from the previous frame. A click toggles only when both
// press and release land on the button. Any other press or key is the
// unlocking gesture.
func routeAudioInput(in audioInput, armed bool) audioRoute {
	var r audioRoute
	if in.pressed {
		armed = in.hovered
	}
	if in.released {
		r.toggle = armed && in.hovered
		armed = false
	}
	r.armed = armed
	if in.muteKey {
		r.toggle = true
	}
	gesture := (in.pressed && !in.hovered) || in.anyKey
	r.unlock = gesture && !r.toggle
	return r
}
