package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// profileRecorder captures one CPU profile and stops it exactly once, either
// when the deadline passes or when the program exits first.
type profileRecorder struct {
	once sync.Once
	f    *os.File
	path string
}

// startProfile begins writing a CPU profile to path and stops it after d.
func startProfile(path string, d time.Duration) (*profileRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	r := &profileRecorder{f: f, path: path}
	time.AfterFunc(d, r.Stop)
	return r, nil
}

// Stop flushes the profile. It is safe to call more than once.
func (r *profileRecorder) Stop() {
	r.once.Do(func() {
		pprof.StopCPUProfile()
		if err := r.f.Close(); err != nil {
			log.Printf("closing profile %s: %v", r.path, err)
			return
		}
		log.Printf("wrote %s", r.path)
	})
}
