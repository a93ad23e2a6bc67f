package kabooom

import (
	"context"
	"sync"
)

// Job is one independent search handed to a Batch worker.
// Each job owns its inputs; workers share nothing but the job slice.
type Job struct {
	Grid       Grid
	Trajectory Trajectory
	Start      Cell
	Options    []Option
}

// Outcome is the worker's report for the job at Index.
type Outcome struct {
	Index  int
	Result Result
	Err    error
}

// Batch runs jobs on a pool of worker goroutines and returns one Outcome per
// job in job order. Options apply to every job before the job's own options.
//
// Cancelling ctx stops dispatch; jobs that were never dispatched carry ctx.Err()
// and the same error is returned.
func Batch(contextObject context.Context, jobs []Job, options ...Option) ([]Outcome, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	// --- Apply options ---
	batchOptions := buildOptions(options)
	numberOfWorkers := batchOptions.NumberOfWorkers
	if numberOfWorkers < 1 {
		numberOfWorkers = 1
	}
	if numberOfWorkers > len(jobs) {
		numberOfWorkers = len(jobs)
	}

	outcomes := make([]Outcome, len(jobs))
	for index := range outcomes {
		outcomes[index].Index = index
	}

	// Channels for communication
	jobIndexChannel := make(chan int)
	outcomeChannel := make(chan Outcome, len(jobs))

	// --- Start worker pool ---
	var waitGroup sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for index := range jobIndexChannel {
				job := jobs[index]
				jobOptions := make([]Option, 0, len(options)+len(job.Options))
				jobOptions = append(jobOptions, options...)
				jobOptions = append(jobOptions, job.Options...)
				result, err := Search(job.Grid, job.Trajectory, job.Start, jobOptions...)
				outcomeChannel <- Outcome{Index: index, Result: result, Err: err}
			}
		}()
	}

	// --- Dispatch ---
	dispatched := 0
	var dispatchErr error
dispatch:
	for index := range jobs {
		if err := contextObject.Err(); err != nil {
			dispatchErr = err
			break
		}
		select {
		case <-contextObject.Done():
			dispatchErr = contextObject.Err()
			break dispatch
		case jobIndexChannel <- index:
			dispatched++
		}
	}
	close(jobIndexChannel)
	waitGroup.Wait()
	close(outcomeChannel)

	for outcome := range outcomeChannel {
		outcomes[outcome.Index] = outcome
	}
	for index := dispatched; index < len(jobs); index++ {
		outcomes[index].Err = dispatchErr
	}
	return outcomes, dispatchErr
}
