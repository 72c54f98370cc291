package studio

import (
	"context"
	"fmt"
	"time"

	"server/internal/bria"
	"server/internal/monitor"
)

// Failure describes why a call attempt produced no output.
type Failure struct {
	Kind    bria.Kind `json:"kind"`
	Message string    `json:"message"`
}

// CallResult is the outcome of one orchestrated call. Output and Failure are
// mutually exclusive: exactly one of them is set.
type CallResult struct {
	Operation string
	Output    *Output
	Failure   *Failure
	Elapsed   time.Duration
}

// OK reports whether the attempt produced output.
func (r CallResult) OK() bool { return r.Failure == nil }

// Runner executes {validate -> transport -> normalize} as one unit. Every
// failure at any stage is captured into the CallResult instead of propagating,
// and exactly one event-log entry is appended per attempt.
type Runner struct {
	client  *bria.Client
	timeout time.Duration
}

// NewRunner wires the orchestrator to a transport client. timeout caps every
// single attempt; there is no retry.
func NewRunner(client *bria.Client, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Runner{client: client, timeout: timeout}
}

// Run performs one attempt and records it into events.
func (r *Runner) Run(ctx context.Context, events *monitor.Log, req Request) CallResult {
	desc := req.Descriptor()
	start := time.Now()
	res := r.attempt(ctx, desc, req)
	res.Operation = desc.Name
	res.Elapsed = time.Since(start)

	entry := monitor.Entry{
		Operation: desc.Name,
		StartedAt: start,
		Duration:  res.Elapsed,
		Success:   res.OK(),
	}
	if res.Failure != nil {
		entry.Error = res.Failure.Message
	}
	events.Append(entry)
	return res
}

func (r *Runner) attempt(ctx context.Context, desc Descriptor, req Request) (res CallResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			res = CallResult{Failure: &Failure{
				Kind:    bria.KindUnexpected,
				Message: fmt.Sprintf("%s: panic: %v", desc.DisplayName(), recovered),
			}}
		}
	}()

	if err := req.Validate(); err != nil {
		return failureResult(desc, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	body, err := r.client.Post(callCtx, desc.Endpoint, req.Envelope())
	if err != nil {
		return failureResult(desc, err)
	}

	out, err := Normalize(body, desc.Shape)
	if err != nil {
		return failureResult(desc, err)
	}
	return CallResult{Output: out}
}

func failureResult(desc Descriptor, err error) CallResult {
	return CallResult{Failure: &Failure{
		Kind:    bria.Classify(err),
		Message: fmt.Sprintf("%s: %v", desc.DisplayName(), err),
	}}
}
