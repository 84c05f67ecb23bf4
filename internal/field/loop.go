package field

// Loop drives a field once per display refresh. At most one frame is
// scheduled at a time, so a resize never leaves two loops running.
type Loop struct {
	field     *Field
	scheduled bool
	frames    uint64
}

// NewLoop returns a stopped loop. A nil field yields a loop that never runs.
func NewLoop(f *Field) *Loop {
	return &Loop{field: f}
}

// Start schedules the next frame.
func (l *Loop) Start() {
	if l.field == nil {
		return
	}
	l.scheduled = true
}

// Cancel drops the pending frame.
func (l *Loop) Cancel() {
	l.scheduled = false
}

// Tick runs the pending frame, if any, and schedules the following one.
func (l *Loop) Tick() bool {
	if !l.scheduled {
		return false
	}
	l.scheduled = false
	l.field.Step()
	l.frames++
	l.scheduled = true
	return true
}

// Resize cancels the pending frame, resizes the field and starts over.
func (l *Loop) Resize(width, height, dpr float64) {
	if l.field == nil {
		return
	}
	l.Cancel()
	l.field.Resize(width, height, dpr)
	l.Start()
}

func (l *Loop) Running() bool { return l.scheduled }
func (l *Loop) Frames() uint64 { return l.frames }
func (l *Loop) Field() *Field { return l.field }
