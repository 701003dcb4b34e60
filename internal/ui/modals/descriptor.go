package modals

// stretchMargin is the number of columns kept free on each side of a
// stretched dialog.
const stretchMargin = 2

type widthKind int

const (
	widthAuto widthKind = iota
	widthMin
	widthStretch
)

// WidthPolicy decides how wide a dialog frame is drawn.
type WidthPolicy struct {
	kind widthKind
	min  int
}

// WidthAuto fits the frame to its content.
func WidthAuto() WidthPolicy { return WidthPolicy{kind: widthAuto} }

// WidthMin fits the frame to its content but never narrower than n columns.
func WidthMin(n int) WidthPolicy { return WidthPolicy{kind: widthMin, min: n} }

// WidthStretch spans the terminal width minus a small margin.
func WidthStretch() WidthPolicy { return WidthPolicy{kind: widthStretch} }

// Resolve returns the frame width for content that is naturally contentW
// columns wide on a screen screenW columns wide.
func (w WidthPolicy) Resolve(contentW, screenW int) int {
	width := contentW
	switch w.kind {
	case widthMin:
		width = max(contentW, w.min)
	case widthStretch:
		width = screenW - 2*stretchMargin
	}
	if ModalMinWidth > 0 {
		width = max(width, min(ModalMinWidth, screenW))
	}
	return max(0, min(width, screenW))
}

// Placement positions a dialog frame on screen.
type Placement struct {
	Width WidthPolicy
	// Top is nil to center vertically, a row offset from the top when zero
	// or positive, and a row offset from the bottom when negative.
	Top *int
}

// Origin returns the top-left corner of a w by h frame on a screenW by
// screenH screen. The frame is always centered horizontally and clamped to
// stay on screen.
func (p Placement) Origin(w, h, screenW, screenH int) (x, y int) {
	x = max(0, (screenW-w)/2)
	switch {
	case p.Top == nil:
		y = (screenH - h) / 2
	case *p.Top >= 0:
		y = *p.Top
	default:
		y = screenH + *p.Top - h + 1
	}
	y = min(y, screenH-h)
	return x, max(0, y)
}

// Button is one action on a dialog. Activating it closes the dialog with
// Value.
type Button struct {
	Label string
	Value any
}

// Descriptor describes a message-style dialog. It is a value object: the
// dialog built from it never changes it.
type Descriptor struct {
	Title   string
	Body    string
	Buttons []Button

	Placement Placement

	// EscapeResult is what Escape resolves the dialog with. nil disables
	// Escape.
	EscapeResult *Result
}

// Top returns a pointer to n for use as Placement.Top.
func Top(n int) *int { return &n }

// YesNo describes a Yes/No question. Yes resolves true; No and Escape
// resolve false.
func YesNo(title, text string) Descriptor {
	no := Valued(false)
	return Descriptor{
		Title: title,
		Body:  text,
		Buttons: []Button{
			{Label: "Yes", Value: true},
			{Label: "No", Value: false},
		},
		EscapeResult: &no,
	}
}

// Message describes an informational dialog with a single OK button. OK and
// Escape both resolve to a nil value.
func Message(title, text string) Descriptor {
	ok := Valued(nil)
	return Descriptor{
		Title:        title,
		Body:         text,
		Buttons:      []Button{{Label: "OK"}},
		EscapeResult: &ok,
	}
}

// Choice describes a dialog with one button per choice; each button
// resolves to its own label. Escape cancels.
func Choice(title, text string, choices ...string) Descriptor {
	buttons := make([]Button, len(choices))
	for i, c := range choices {
		buttons[i] = Button{Label: c, Value: c}
	}
	cancel := CancelResult
	return Descriptor{
		Title:        title,
		Body:         text,
		Buttons:      buttons,
		EscapeResult: &cancel,
	}
}
