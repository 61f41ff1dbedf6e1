// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package watchdog

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/logrange/linker"
	"github.com/solarisdb/await/chans"
	"github.com/solarisdb/await/logging"
)

type (
	// Timer object allows to release an armed action made by Arm()
	Timer interface {
		// Disarm releases the armed action, so it will never be fired. Disarming
		// an already fired or released action does nothing
		Disarm()
	}

	// Scheduler is a helper interface to indicate that the Watchdog object has
	// a lifecycle, which should be supported if it is created and used outside of linker
	Scheduler interface {
		Arm(f func(), timeout time.Duration) Timer
		linker.Shutdowner
	}

	// Watchdog keeps the armed actions in a heap ordered by their fire times. The
	// actions are served by the watcher goroutines, which are spawned on demand
	// and retire when there is nothing to do for a while
	Watchdog struct {
		lock        sync.Mutex
		wakeCh      chan bool
		armed       *actions
		watchers    int
		idleTimeout time.Duration
		maxWorkers  int
		done        chan struct{}
		logger      logging.Logger
	}

	action struct {
		wd    *Watchdog
		f     func()
		fireT time.Time
		idx   int
	}

	actions []*action

	dummyTimer struct{}
)

func init() {
	wd = New()
}

var wd *Watchdog

// VoidTimer maybe used to initialize a Timer variable, without checking whether it is nil or not
var VoidTimer Timer = dummyTimer{}

var _ Scheduler = (*Watchdog)(nil)
var _ linker.Shutdowner = (*Watchdog)(nil)

// New creates a Watchdog with its own watchers. The result has a lifecycle -
// Shutdown() must be called when the object is not needed anymore. Most of the
// callers do not need an own instance, the package level Arm() serves the
// common case via the shared one, which is never shutdown
func New() *Watchdog {
	wd := new(Watchdog)
	wd.armed = &actions{}
	wd.maxWorkers = 10
	wd.wakeCh = make(chan bool, wd.maxWorkers)
	wd.idleTimeout = time.Second * 30
	wd.done = make(chan struct{})
	wd.logger = logging.NewLogger("watchdog")
	heap.Init(wd.armed)
	return wd
}

// Arm allows scheduling the one-shot execution of the function f in timeout provided.
// The function returns the Timer object, which may be used for releasing the armed
// action if it is not needed anymore.
func Arm(f func(), timeout time.Duration) Timer {
	return wd.Arm(f, timeout)
}

// Arm schedules the one-shot execution of the function f in timeout provided. A
// non-positive timeout fires the action as soon as a watcher observes it. The
// returned Timer releases the action if Disarm() is called before the fire time
func (wd *Watchdog) Arm(f func(), timeout time.Duration) Timer {
	a := new(action)
	a.f = f
	a.fireT = time.Now().Add(timeout)
	a.idx = -1
	a.wd = wd
	if f != nil {
		wd.add(a)
	}
	return a
}

// Shutdown drops all the armed actions, so they will never fire, and lets the
// watchers go. The Watchdog cannot be used after that - the new Arm() calls
// return inert timers. Shutdown implements linker.Shutdowner, so the object
// may be registered in the linker injector, which will close it on its shutdown
func (wd *Watchdog) Shutdown() {
	wd.lock.Lock()
	defer wd.lock.Unlock()
	if !chans.IsOpened(wd.done) {
		return
	}
	close(wd.done)
	for wd.armed.Len() > 0 {
		a := heap.Pop(wd.armed).(*action)
		a.f = nil
	}
}

// String implements fmt.Stringify
func (wd *Watchdog) String() string {
	wd.lock.Lock()
	defer wd.lock.Unlock()
	return fmt.Sprintf("{armed: %d, watchers: %d, shutdown: %t}", wd.armed.Len(), wd.watchers, !chans.IsOpened(wd.done))
}

// Disarm releases the armed action if not fired yet
func (a *action) Disarm() {
	a.wd.disarm(a)
}

// String implements fmt.Stringify
func (a *action) String() string {
	return a.wd.actionAsString(a)
}

func (wd *Watchdog) add(a *action) {
	wd.lock.Lock()
	defer wd.lock.Unlock()
	if !chans.IsOpened(wd.done) {
		a.f = nil
		return
	}
	heap.Push(wd.armed, a)
	if wd.watchers == 0 {
		wd.watchers++
		go wd.watcher()
	} else {
		wd.notifyWatcher()
	}
}

func (wd *Watchdog) actionAsString(a *action) string {
	wd.lock.Lock()
	defer wd.lock.Unlock()
	f := "<released>"
	if a.f != nil {
		f = "<armed>"
	}
	return fmt.Sprintf("{f: %s, fireT: %v, queued: %t}", f, a.fireT, a.idx >= 0)
}

func (wd *Watchdog) disarm(a *action) {
	wd.lock.Lock()
	defer wd.lock.Unlock()

	if a.idx < 0 {
		return
	}
	a.f = nil
	heap.Remove(wd.armed, a.idx)
	if wd.watchers > 0 {
		wd.notifyWatcher()
	}
}

func (wd *Watchdog) notifyWatcher() {
	select {
	case wd.wakeCh <- true:
	default:
	}
}

// fire runs the action function. The watcher must survive a misbehaving action,
// so the panics are recovered and logged here
func (wd *Watchdog) fire(f func()) {
	defer func() {
		if r := recover(); r != nil {
			wd.logger.Errorf("the armed action panicked: %v", r)
		}
	}()
	f()
}

func (wd *Watchdog) watcher() {
	misCount := 0
	var f func()
	for {
		if f != nil {
			wd.fire(f)
			f = nil
			misCount = 0
		} else {
			misCount++
		}

		var tmt time.Duration
		wd.lock.Lock()
		if !chans.IsOpened(wd.done) {
			wd.watchers--
			wd.lock.Unlock()
			return
		}
		if wd.armed.Len() == 0 {
			if misCount > 1 {
				wd.watchers--
				wd.lock.Unlock()
				return
			}
			// if the watcher did the job, let's sleep for the idle timeout and if no new actions, let it go also
			tmt = wd.idleTimeout
		} else {
			fireT := (*wd.armed)[0].fireT
			now := time.Now()
			if now.After(fireT) {
				a := heap.Pop(wd.armed).(*action)
				f = a.f
				if wd.armed.Len() > 0 {
					fireT = (*wd.armed)[0].fireT
					if now.After(fireT) && wd.watchers < wd.maxWorkers {
						// spawn new watcher if there is an action ready to fire
						wd.watchers++
						go wd.watcher()
					}
				}
				wd.lock.Unlock()
				continue
			}

			tmt = fireT.Sub(now)
			if wd.watchers > 1 {
				// if the watcher already slept once with no job, let it go
				if misCount > 1 {
					wd.watchers--
					wd.lock.Unlock()
					return
				}
				if tmt > wd.idleTimeout {
					tmt = wd.idleTimeout
				}
			}
		}
		wd.lock.Unlock()

		tmr := time.NewTimer(tmt)
		select {
		case <-tmr.C:
		case <-wd.done:
			if !tmr.Stop() {
				<-tmr.C
			}
			wd.lock.Lock()
			wd.watchers--
			wd.lock.Unlock()
			return
		case <-wd.wakeCh:
			if !tmr.Stop() {
				<-tmr.C
			}
			misCount = 0
		}
	}
}

func (as *actions) Len() int {
	return len(*as)
}

func (as *actions) Less(i, j int) bool {
	ai := (*as)[i]
	aj := (*as)[j]
	return ai.fireT.Before(aj.fireT)
}

func (as *actions) Swap(i, j int) {
	(*as)[i], (*as)[j] = (*as)[j], (*as)[i]
	(*as)[i].idx, (*as)[j].idx = i, j
}

func (as *actions) Push(x any) {
	a := x.(*action)
	a.idx = as.Len()
	(*as) = append(*as, a)
}

func (as *actions) Pop() any {
	last := as.Len() - 1
	res := (*as)[last]
	(*as)[last] = nil
	(*as) = (*as)[:last]
	res.idx = -1
	return res
}

func (d dummyTimer) Disarm() {
	// Do nothing
}
