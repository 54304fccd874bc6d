package view

import (
	"bytes"
	"context"
	"fmt"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"termlife/src/universe"
	"time"
)

const (
	eventsBuffer   = 64
	closeTimeout   = time.Second
	fieldView      = "field"
	leftColumnSize = 30
	minWindowSize  = 20
)

type keyBinding struct {
	keys     []interface{}
	name     string
	descr    string
	event    func(v *gocui.View) Event
	viewName string
}

//ConsoleUI is the Terminal implemented on top of gocui
//the gocui main loop runs in its own goroutine, key bindings turn keys into Events
//holding a ConsoleUI means holding the terminal in raw mode until Close
type ConsoleUI struct {
	g       *gocui.Gui
	k       []keyBinding
	options universe.Options
	details map[string]interface{}
	logger  *log.Logger

	events    chan Event
	done      chan struct{} //closed when the main loop returns
	loopErr   error         //valid after done is closed
	closeOnce sync.Once

	mu    sync.Mutex
	frame Frame

	liveFiller       string
	deadFiller       string
	liveCursorFiller string
	deadCursorFiller string
}

var (
	runningStateDescr = map[bool]string{
		false: aurora.Colorize("paused", aurora.BlueFg).String(),
		true:  aurora.Colorize("running", aurora.CyanFg).String(),
	}
)

//NewConsoleUI switches the terminal to raw mode and starts the gocui main loop
//details are shown in the configuration panel sorted by name
func NewConsoleUI(o universe.Options, details map[string]interface{}, logger *log.Logger) (*ConsoleUI, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	t := &ConsoleUI{
		options:          o,
		details:          details,
		logger:           logger,
		events:           make(chan Event, eventsBuffer),
		done:             make(chan struct{}),
		liveFiller:       aurora.Green("█").String(),
		deadFiller:       "░",
		liveCursorFiller: aurora.Yellow("█").String(),
		deadCursorFiller: aurora.Yellow("▒").String(),
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t.g = g
	t.g.Mouse = true
	t.k = t.keyBindings()
	t.g.SetManagerFunc(t.layout)
	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	go t.mainLoop()
	return t, nil
}

func (t *ConsoleUI) keyBindings() []keyBinding {
	return []keyBinding{
		{[]interface{}{'q', gocui.KeyCtrlC}, "Q", "Exit", emit(Event{Kind: EventQuit}), ""},
		{[]interface{}{gocui.KeyEnter, 'p'}, "ENTER", "Run/Pause", emit(Event{Kind: EventToggleRunning}), ""},
		{[]interface{}{'+', '='}, "+", "Faster", emit(Event{Kind: EventSpeedUp}), ""},
		{[]interface{}{'-'}, "-", "Slower", emit(Event{Kind: EventSpeedDown}), ""},
		{[]interface{}{gocui.KeyArrowUp, 'k'}, "ARROWS", "Move", emit(Event{Kind: EventMoveCursor, Direction: DirUp}), ""},
		{[]interface{}{gocui.KeyArrowDown, 'j'}, "", "", emit(Event{Kind: EventMoveCursor, Direction: DirDown}), ""},
		{[]interface{}{gocui.KeyArrowLeft, 'h'}, "", "", emit(Event{Kind: EventMoveCursor, Direction: DirLeft}), ""},
		{[]interface{}{gocui.KeyArrowRight, 'l'}, "", "", emit(Event{Kind: EventMoveCursor, Direction: DirRight}), ""},
		{[]interface{}{gocui.KeySpace}, "SPACE", "Toggle the cell", emit(Event{Kind: EventToggleCell}), ""},
		{[]interface{}{'n'}, "N", "Next step", emit(Event{Kind: EventStep}), ""},
		{[]interface{}{'r'}, "R", "Random", emit(Event{Kind: EventRandomize}), ""},
		{[]interface{}{'c'}, "C", "Clear", emit(Event{Kind: EventClear}), ""},
		{[]interface{}{gocui.MouseLeft}, "MOUSE", "Settle/kill the cell", mouseCell(true), fieldView},
		{[]interface{}{gocui.MouseRight}, "", "", mouseCell(false), fieldView},
	}
}

func emit(ev Event) func(v *gocui.View) Event {
	return func(_ *gocui.View) Event {
		return ev
	}
}

//mouseCell converts the click position inside the field view to the grid position
func mouseCell(alive universe.Cell) func(v *gocui.View) Event {
	return func(v *gocui.View) Event {
		cx, cy := v.Cursor()
		ox, oy := v.Origin()
		return Event{Kind: EventSetCell, Point: universe.Point{Row: cy + oy, Col: cx + ox}, Alive: alive}
	}
}

func (t *ConsoleUI) initKeyBindings(k []keyBinding) error {
	for _, kb := range k {
		ev := kb.event
		for _, key := range kb.keys {
			h := func(_ *gocui.Gui, v *gocui.View) error {
				t.push(ev(v))
				return nil
			}
			if err := t.g.SetKeybinding(kb.viewName, key, gocui.ModNone, h); err != nil {
				return fmt.Errorf("key binding %v: %w", kb.descr, err)
			}
		}
	}
	return nil
}

//push hands the event to the controller, it runs inside the gocui loop so it must not block
func (t *ConsoleUI) push(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.logger.Printf("view: input buffer is full, %v dropped", ev.Kind)
	}
}

func (t *ConsoleUI) mainLoop() {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.loopErr = fmt.Errorf("terminal main loop: %v", r)
		}
	}()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.loopErr = err
	}
}

func (t *ConsoleUI) NextEvent(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-t.events:
		return ev, true, nil
	case <-t.done:
		return Event{}, false, t.closedErr()
	case <-ctx.Done():
		return Event{}, false, ctx.Err()
	case <-timer.C:
		return Event{}, false, nil
	}
}

//Render stores the frame and wakes gocui up
//the layout manager draws the latest stored frame on every flush, so the order of updates does not matter
func (t *ConsoleUI) Render(f Frame) error {
	select {
	case <-t.done:
		return t.closedErr()
	default:
	}
	t.mu.Lock()
	t.frame = f
	t.mu.Unlock()
	t.g.Update(func(*gocui.Gui) error { return nil })
	return nil
}

//Close stops the main loop and restores the terminal
func (t *ConsoleUI) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		select {
		case <-t.done:
		case <-time.After(closeTimeout):
			err = fmt.Errorf("terminal main loop did not stop in %v", closeTimeout)
		}
		t.g.Close()
	})
	return err
}

func (t *ConsoleUI) closedErr() error {
	if t.loopErr != nil {
		return t.loopErr
	}
	return ErrClosed
}

func (t *ConsoleUI) currentFrame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

func (t *ConsoleUI) draw(g *gocui.Gui) error {
	f := t.currentFrame()
	if err := t.renderField(g, f); err != nil {
		return err
	}
	t.renderStatus(g, f)
	return nil
}

func (t *ConsoleUI) renderField(g *gocui.Gui, f Frame) error {
	v, e := g.View(fieldView)
	if e == gocui.ErrUnknownView {
		//the terminal is too small, layout has removed the view
		return nil
	} else if e != nil {
		return e
	}
	v.Clear()
	maxW, maxH := v.Size()
	_, _ = fmt.Fprint(v, t.fieldText(f, maxW, maxH))
	return nil
}

//fieldText draws the grid row by row, cropped to the view size
func (t *ConsoleUI) fieldText(f Frame, maxW int, maxH int) string {
	grid := f.Status.Grid
	crop := grid.Width > maxW || grid.Height > maxH

	var b bytes.Buffer
	for y := 0; y < grid.Height; y++ {
		//discard the data outside the view area
		if y >= maxH {
			break
		}
		if y != 0 {
			b.WriteByte('\n')
		}
		if crop && y == maxH-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").String())
			break
		}
		for x := 0; x < grid.Width && x < maxW; x++ {
			p := universe.Point{Row: y, Col: x}
			b.WriteString(t.filler(grid.Cell(p), p == f.Cursor))
		}
	}
	return b.String()
}

func (t *ConsoleUI) filler(c universe.Cell, cursor bool) string {
	switch {
	case cursor && bool(c):
		return t.liveCursorFiller
	case cursor:
		return t.deadCursorFiller
	case bool(c):
		return t.liveFiller
	default:
		return t.deadFiller
	}
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui, f Frame) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	s := f.Status
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Number))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.Running]))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", s.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Cursor", "%v:%v", f.Cursor.Row, f.Cursor.Col))
	_, _ = fmt.Fprintln(v, t.renderProp("Pending edits", "%v", s.Pending))
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	c := t.options
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v..%v", c.MinInterval, c.MaxInterval))
	_, _ = fmt.Fprintln(v, t.renderProp("Speed step", "%v", c.IntervalStep))
	propNames := make([]string, 0, len(t.details))
	for k := range t.details {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintln(v, t.renderProp(propName, "%v", t.details[propName]))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()

	if maxY < minWindowSize {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView(fieldView)
		_ = g.DeleteView("help")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnSize, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(v)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnSize, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}

	if v, err := g.SetView(fieldView, leftColumnSize+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, t.helpText())
	}

	return t.draw(g)
}

func (t *ConsoleUI) helpText() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	first := true
	for _, k := range t.k {
		//secondary bindings of the same action have no name
		if k.name == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:maxX]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}
