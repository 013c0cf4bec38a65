// Package sandbox runs a function in isolation
// and reports whether it returned, panicked, or stopped its goroutine.
package sandbox

import (
	"runtime"
)

type O struct {
	OK     bool
	Panic  bool
	Goexit bool

	PanicValue any
}

func Run(fn func()) O {
	var done = make(chan struct{})
	var o O
	go func() {
		defer close(done)
		var r any
		defer func() {
			if o.OK {
				return
			}
			if o.Panic {
				if r == nil {
					return
				}
				if _, isNilPanic := r.(*runtime.PanicNilError); isNilPanic {
					return
				}
				o.PanicValue = r
			} else {
				o.Goexit = true
			}
		}()
		func() {
			defer func() {
				r = recover()
			}()
			fn()
			o.OK = true
		}()
		if !o.OK { // panic:true, goexit:false
			o.Panic = true
		}
	}()
	<-done
	return o
}
