// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// countingWorker tracks Start and Stop calls.
type countingWorker struct {
	started int
	stopped int
}

func (w *countingWorker) Start(context.Context) { w.started++ }
func (w *countingWorker) Stop()                 { w.stopped++ }

func TestWorkers_StartAndStopAllWorkers(t *testing.T) {
	w1 := &countingWorker{}
	w2 := &countingWorker{}
	w3 := &countingWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Start(context.Background())
	ws.Stop()

	for i, w := range []*countingWorker{w1, w2, w3} {
		if w.started != 1 {
			t.Errorf("worker[%d]: expected started=1, got %d", i, w.started)
		}
		if w.stopped != 1 {
			t.Errorf("worker[%d]: expected stopped=1, got %d", i, w.stopped)
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Start(context.Background())
	ws.Stop()
}

func TestWorkers_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Start(context.Background())
	ws.Stop()
}
