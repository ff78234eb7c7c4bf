package input

import (
	"sync"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestTakeEmpty(t *testing.T) {
	c := NewChannel()
	if _, ok := c.Take(); ok {
		t.Error("Take() on a fresh channel should report nothing pending")
	}
}

func TestLatestDirectionWins(t *testing.T) {
	c := NewChannel()
	c.Send(SignalUp)
	c.Send(SignalLeft)
	c.Send(SignalDown)

	d, ok := c.Take()
	if !ok || d != snake.DirDown {
		t.Errorf("Take() = %v, %v; expected down, true", d, ok)
	}
	if _, ok := c.Take(); ok {
		t.Error("Take() should clear the pending direction")
	}
}

func TestNonDirectionalSignalsKeepPending(t *testing.T) {
	c := NewChannel()
	c.Send(SignalRight)
	c.Send(SignalNone)
	c.Send(SignalPause)

	d, ok := c.Take()
	if !ok || d != snake.DirRight {
		t.Errorf("Take() = %v, %v; expected right, true", d, ok)
	}
}

func TestPauseToggles(t *testing.T) {
	c := NewChannel()
	if c.Paused() {
		t.Fatal("Fresh channel should not be paused")
	}
	c.Send(SignalPause)
	if !c.Paused() {
		t.Error("First pause should pause")
	}
	c.Send(SignalPause)
	if c.Paused() {
		t.Error("Second pause should resume")
	}
}

func TestQuitClosesDoneOnce(t *testing.T) {
	c := NewChannel()

	select {
	case <-c.Done():
		t.Fatal("Done() closed before quit")
	default:
	}

	c.Quit()
	c.Send(SignalQuit) // must not panic on double close

	select {
	case <-c.Done():
	default:
		t.Error("Done() should be closed after quit")
	}
}

func TestConcurrentSendTake(t *testing.T) {
	c := NewChannel()
	const senders = 8
	const perSender = 500

	var wg sync.WaitGroup
	for i := range senders {
		wg.Add(1)
		go func(sig Signal) {
			defer wg.Done()
			for range perSender {
				c.Send(sig)
			}
		}(Signal(i%4) + SignalUp)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range senders * perSender {
			if d, ok := c.Take(); ok && !d.Valid() {
				t.Errorf("Take() returned invalid direction %v", d)
				return
			}
		}
	}()

	wg.Wait()
	<-done

	// The last write after all senders finished is visible to the next take.
	c.Send(SignalLeft)
	if d, ok := c.Take(); !ok || d != snake.DirLeft {
		t.Errorf("Take() = %v, %v; expected left, true", d, ok)
	}
}

func TestSignalDirection(t *testing.T) {
	tests := []struct {
		sig  Signal
		want snake.Direction
		ok   bool
	}{
		{SignalUp, snake.DirUp, true},
		{SignalDown, snake.DirDown, true},
		{SignalLeft, snake.DirLeft, true},
		{SignalRight, snake.DirRight, true},
		{SignalPause, 0, false},
		{SignalQuit, 0, false},
		{SignalNone, 0, false},
	}

	for _, tc := range tests {
		d, ok := tc.sig.Direction()
		if ok != tc.ok || (ok && d != tc.want) {
			t.Errorf("%v.Direction() = %v, %v; expected %v, %v", tc.sig, d, ok, tc.want, tc.ok)
		}
	}
}

func TestScriptReplaysByTick(t *testing.T) {
	live := NewChannel()
	s := NewScript(map[uint64]snake.Direction{2: snake.DirUp, 4: snake.DirLeft}, live)

	want := []struct {
		d  snake.Direction
		ok bool
	}{
		{0, false},
		{snake.DirUp, true},
		{0, false},
		{snake.DirLeft, true},
		{0, false},
	}
	for i, w := range want {
		d, ok := s.Take()
		if ok != w.ok || (ok && d != w.d) {
			t.Errorf("tick %d: Take() = %v, %v; expected %v, %v", i+1, d, ok, w.d, w.ok)
		}
	}

	// Live keys do not leak into a replay.
	live.Send(SignalDown)
	if _, ok := s.Take(); ok {
		t.Error("Script should ignore live directions")
	}

	live.Send(SignalPause)
	if !s.Paused() {
		t.Error("Script should follow the live pause state")
	}
	live.Quit()
	select {
	case <-s.Done():
	default:
		t.Error("Script Done() should follow the live channel")
	}
}
