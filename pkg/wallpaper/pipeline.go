package wallpaper

import (
	"context"
	"sync"

	"wallman/util/log"
)

// ImportJob is one queued import: either a local Path or a remote URL,
// with the callback that receives the outcome.
type ImportJob struct {
	Path string
	URL  string

	// Callback receives the result, invoked exactly once per delivered
	// job, on the pipeline's dispatch queue.
	Callback func(ImportResult)
}

// ImportResult is the outcome of one import job: a Wallpaper or an error,
// never both.
type ImportResult struct {
	Wallpaper *Wallpaper
	Err       error
}

type deliveredResult struct {
	job    ImportJob
	result ImportResult
}

// Pipeline runs imports on a worker pool so a UI embedder never blocks its
// event loop on network or disk. Results funnel through a single collector
// goroutine and are handed to each job's callback via the dispatch function,
// which an embedder points at its UI-thread marshaller. Jobs still queued
// when the pipeline stops are dropped without a callback.
type Pipeline struct {
	mgr        *Manager
	jobChan    chan ImportJob
	resultChan chan deliveredResult
	workerWg   sync.WaitGroup
	collector  sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	dispatch   func(func())
}

// NewPipeline creates a pipeline over mgr. dispatch marshals callback
// invocations onto the caller's thread/queue; nil runs callbacks directly on
// the collector goroutine (still serialized).
func NewPipeline(mgr *Manager, dispatch func(func())) *Pipeline {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		mgr:        mgr,
		jobChan:    make(chan ImportJob, 100),
		resultChan: make(chan deliveredResult, 100),
		ctx:        ctx,
		cancel:     cancel,
		dispatch:   dispatch,
	}
}

// Start launches the worker pool and the collector.
func (p *Pipeline) Start(workerCount int) {
	log.Printf("Starting import pipeline with %d workers", workerCount)
	for i := 0; i < workerCount; i++ {
		p.workerWg.Add(1)
		go p.workerLoop(i)
	}

	p.collector.Add(1)
	go p.collectorLoop()
}

// Stop cancels in-flight imports and waits for workers and collector to
// finish. Results already produced are still delivered.
func (p *Pipeline) Stop() {
	log.Println("Stopping import pipeline...")
	p.cancel()
	p.workerWg.Wait()
	close(p.resultChan)
	p.collector.Wait()
	log.Println("Import pipeline stopped.")
}

// Submit queues a job. Returns false once the pipeline is stopped.
func (p *Pipeline) Submit(job ImportJob) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}
	select {
	case p.jobChan <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *Pipeline) workerLoop(id int) {
	defer p.workerWg.Done()
	log.Debugf("Import worker %d started", id)

	for {
		select {
		case <-p.ctx.Done():
			log.Debugf("Import worker %d stopping", id)
			return
		case job := <-p.jobChan:
			var res ImportResult
			if job.URL != "" {
				res.Wallpaper, res.Err = p.mgr.ImportFromURL(p.ctx, job.URL)
			} else {
				res.Wallpaper, res.Err = p.mgr.ImportFromFile(job.Path, "")
			}
			p.resultChan <- deliveredResult{job: job, result: res}
		}
	}
}

// collectorLoop is the single consumer that hands results to callbacks.
func (p *Pipeline) collectorLoop() {
	defer p.collector.Done()
	for delivered := range p.resultChan {
		if delivered.result.Err != nil {
			log.Printf("Import pipeline error: %v", delivered.result.Err)
		}
		if cb := delivered.job.Callback; cb != nil {
			res := delivered.result
			p.dispatch(func() { cb(res) })
		}
	}
}
