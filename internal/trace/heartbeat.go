package trace

import (
	"fmt"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat every interval until the returned stop
// is called. Each beat names the oldest open file span, so a stuck worker
// shows up as the same file in consecutive beats.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for n := 1; ; n++ {
			select {
			case <-done:
				return
			case <-tick.C:
				t.Emit(heartbeatEvent(n))
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func heartbeatEvent(n int) *Event {
	ev := newEvent(KindHeartbeat, ScopeDriver, "heartbeat")
	count, oldest := openSpans.oldest()
	ev.Detail = fmt.Sprintf("#%d, %d open", n, count)
	if oldest != nil {
		ev.Fields = []Field{
			{Key: "oldest", Value: oldest.name},
			{Key: "age", Value: time.Since(oldest.started).Round(time.Millisecond).String()},
		}
	}
	return ev
}
