package input

import "testing"

type fakeSource struct {
	keyDown func(uint32)
	keyUp   func(uint32)
	scroll  func(float32)
	focus   func(bool)
}

func (f *fakeSource) SetKeyDownCallback(cb func(keyCode uint32)) { f.keyDown = cb }
func (f *fakeSource) SetKeyUpCallback(cb func(keyCode uint32))   { f.keyUp = cb }
func (f *fakeSource) SetScrollCallback(cb func(delta float32))   { f.scroll = cb }
func (f *fakeSource) SetFocusCallback(cb func(focused bool))     { f.focus = cb }

func TestDispatcherDeliversByKind(t *testing.T) {
	d := NewDispatcher()

	var downs, ups []uint32
	var wheels []float32
	focusLost := 0

	d.OnKeyDown(func(k uint32) { downs = append(downs, k) })
	d.OnKeyUp(func(k uint32) { ups = append(ups, k) })
	d.OnWheel(func(dy float32) { wheels = append(wheels, dy) })
	d.OnFocusLost(func() { focusLost++ })

	d.DispatchKeyDown(87)
	d.DispatchKeyUp(87)
	d.DispatchWheel(-3)
	d.DispatchFocusLost()

	if len(downs) != 1 || downs[0] != 87 {
		t.Fatalf("expected one key-down 87, got %v", downs)
	}
	if len(ups) != 1 || ups[0] != 87 {
		t.Fatalf("expected one key-up 87, got %v", ups)
	}
	if len(wheels) != 1 || wheels[0] != -3 {
		t.Fatalf("expected one wheel -3, got %v", wheels)
	}
	if focusLost != 1 {
		t.Fatalf("expected one focus loss, got %d", focusLost)
	}
}

func TestDispatcherRemoveListener(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	id := d.OnKeyDown(func(uint32) { calls++ })

	if d.ListenerCount() != 1 {
		t.Fatalf("expected 1 listener, got %d", d.ListenerCount())
	}
	if !d.RemoveListener(id) {
		t.Fatalf("RemoveListener should report removal of a live listener")
	}
	if d.RemoveListener(id) {
		t.Fatalf("second RemoveListener should be a no-op")
	}
	if d.RemoveListener(0) {
		t.Fatalf("zero ID should never match a listener")
	}

	d.DispatchKeyDown(65)
	if calls != 0 {
		t.Fatalf("removed listener was called %d times", calls)
	}
}

func TestDispatcherListenerCanRemoveItself(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var id ListenerID
	id = d.OnWheel(func(float32) {
		calls++
		d.RemoveListener(id)
	})

	d.DispatchWheel(1)
	d.DispatchWheel(1)

	if calls != 1 {
		t.Fatalf("expected a single call before self removal, got %d", calls)
	}
}

func TestDispatcherNilListenerIgnored(t *testing.T) {
	d := NewDispatcher()
	if id := d.OnKeyDown(nil); id != 0 {
		t.Fatalf("nil listener should yield the zero ID, got %d", id)
	}
	if d.ListenerCount() != 0 {
		t.Fatalf("nil listener should not be registered")
	}
}

func TestDispatcherBind(t *testing.T) {
	src := &fakeSource{}
	d := NewDispatcher()
	d.Bind(src)

	var gotKey uint32
	var gotWheel float32
	lost := 0
	d.OnKeyDown(func(k uint32) { gotKey = k })
	d.OnWheel(func(dy float32) { gotWheel = dy })
	d.OnFocusLost(func() { lost++ })

	src.keyDown(81)
	src.scroll(2)
	src.focus(true)
	src.focus(false)

	if gotKey != 81 {
		t.Fatalf("expected key 81 through bound source, got %d", gotKey)
	}
	if gotWheel != -2 {
		t.Fatalf("GLFW scroll +2 should arrive as DOM delta -2, got %v", gotWheel)
	}
	if lost != 1 {
		t.Fatalf("only focus loss should be dispatched, got %d", lost)
	}
}
