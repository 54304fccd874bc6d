package view

import (
	"io"
	"log"
	"strings"
	"termlife/src/universe"
	"testing"
)

func plainUI() *ConsoleUI {
	return &ConsoleUI{
		liveFiller:       "#",
		deadFiller:       ".",
		liveCursorFiller: "@",
		deadCursorFiller: "_",
	}
}

func frameOf(g universe.Grid, cursor universe.Point) Frame {
	return Frame{
		Status: universe.Status{Generation: universe.Generation{Grid: g}},
		Cursor: cursor,
	}
}

func TestFieldText(t *testing.T) {
	g := universe.GridFromPoints(3, 2, []universe.Point{{Row: 0, Col: 0}, {Row: 1, Col: 2}})
	tests := []struct {
		name   string
		cursor universe.Point
		expect string
	}{
		{"cursor on a dead cell", universe.Point{Row: 1, Col: 1}, "#..\n._#"},
		{"cursor on a live cell", universe.Point{Row: 0, Col: 0}, "@..\n..#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainUI().fieldText(frameOf(g, tt.cursor), 10, 10); got != tt.expect {
				t.Fatalf("got %q, expected %q", got, tt.expect)
			}
		})
	}
}

func TestFieldTextCrop(t *testing.T) {
	g := universe.NewGrid(6, 4)
	got := plainUI().fieldText(frameOf(g, universe.Point{Row: 0, Col: 0}), 3, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("%v lines: %q", len(lines), got)
	}
	if lines[0] != "_.." {
		t.Fatalf("first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "larger than the viewing area") {
		t.Fatalf("no crop warning in %q", lines[1])
	}
}

func TestHelpText(t *testing.T) {
	ui := plainUI()
	ui.k = ui.keyBindings()
	help := ui.helpText()
	for _, kb := range ui.k {
		if kb.name != "" && !strings.Contains(help, kb.descr) {
			t.Errorf("help has no %q", kb.descr)
		}
	}
}

func TestKeyBindingsCoverEvents(t *testing.T) {
	ui := plainUI()
	seen := map[EventKind]bool{}
	for _, kb := range ui.keyBindings() {
		if kb.viewName != "" {
			//mouse bindings need a view
			continue
		}
		seen[kb.event(nil).Kind] = true
	}
	for k := EventQuit; k < EventSetCell; k++ {
		if !seen[k] {
			t.Errorf("no key for %v", k)
		}
	}
}

func TestEventKindString(t *testing.T) {
	if s := EventQuit.String(); s != "quit" {
		t.Errorf("got %q", s)
	}
	if s := EventKind(99).String(); s != "unknown" {
		t.Errorf("got %q", s)
	}
}

func TestPushDoesNotBlock(t *testing.T) {
	ui := plainUI()
	ui.events = make(chan Event, 1)
	ui.logger = log.New(io.Discard, "", 0)
	ui.push(Event{Kind: EventQuit})
	ui.push(Event{Kind: EventClear})
	if ev := <-ui.events; ev.Kind != EventQuit {
		t.Fatalf("got %v", ev.Kind)
	}
}
