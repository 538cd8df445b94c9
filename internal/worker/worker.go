package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/engine"
	"github.com/landxcape/nbody-sim-core/internal/scenario"
)

// DefaultTimeout bounds how long a single request may run before the
// worker gives up on it and returns a timeout error response. Per spec
// §6, callers may override this.
const DefaultTimeout = 10 * time.Second

// Worker serializes access to a single engine.Engine behind a request
// channel, mirroring the asynchronous "worker collaborator" described in
// spec §6. Requests are processed one at a time in submission order;
// there is no internal concurrency to race against the engine's
// single-threaded contract.
type Worker struct {
	eng      *engine.Engine
	requests chan requestEnvelope
	done     chan struct{}
	timeout  time.Duration
}

type requestEnvelope struct {
	req     Request
	respond chan Response
}

// New constructs a Worker wrapping a fresh, uninitialized engine.
func New() *Worker {
	return &Worker{
		eng:      engine.New(),
		requests: make(chan requestEnvelope),
		done:     make(chan struct{}),
		timeout:  DefaultTimeout,
	}
}

// WithTimeout overrides the per-request timeout.
func (w *Worker) WithTimeout(d time.Duration) *Worker {
	w.timeout = d
	return w
}

// Run starts the worker loop on its own goroutine, which processes
// requests until ctx is cancelled or Close is called, and returns the
// ReadyMessage for the startup handshake in spec §6 without blocking.
// Submit is the caller-facing entry point.
func (w *Worker) Run(ctx context.Context) ReadyMessage {
	ready := ReadyMessage{Type: "ready", SendPort: 0}

	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case envelope, ok := <-w.requests:
				if !ok {
					return
				}
				envelope.respond <- w.dispatch(ctx, envelope.req)
			}
		}
	}()

	return ready
}

// Close signals the worker loop to stop accepting new requests. Already
// in-flight requests still receive a response.
func (w *Worker) Close() {
	close(w.requests)
	<-w.done
}

// Submit enqueues req and blocks until a response arrives, ctx is
// cancelled, or the worker's configured timeout elapses (whichever comes
// first) — the back-pressure and per-request timeout behavior spec §6
// asks for.
func (w *Worker) Submit(ctx context.Context, req Request) Response {
	respond := make(chan Response, 1)

	timeoutCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	select {
	case w.requests <- requestEnvelope{req: req, respond: respond}:
	case <-timeoutCtx.Done():
		return errorResponse(req.ID, timeoutCtx.Err())
	}

	select {
	case resp := <-respond:
		return resp
	case <-timeoutCtx.Done():
		return errorResponse(req.ID, timeoutCtx.Err())
	}
}

func (w *Worker) dispatch(ctx context.Context, req Request) Response {
	data, err := w.handle(req)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	return okResponse(req.ID, data)
}

func (w *Worker) handle(req Request) (any, error) {
	switch req.Command {
	case CommandInitialize:
		var payload struct {
			Config config.SimulationConfig `json:"config"`
			Bodies []body.Body             `json:"bodies"`
		}
		if err := decodePayload(req.Payload, &payload); err != nil {
			return nil, err
		}
		return nil, w.eng.Initialize(payload.Config, payload.Bodies)

	case CommandSetConfig:
		var payload config.SimulationConfig
		if err := decodePayload(req.Payload, &payload); err != nil {
			return nil, err
		}
		return nil, w.eng.SetConfig(payload)

	case CommandApplyEdit:
		edit, err := body.DecodeEdit(req.Payload)
		if err != nil {
			return nil, err
		}
		return nil, w.eng.ApplyEdit(edit)

	case CommandStep:
		var payload struct {
			Ticks int `json:"ticks"`
		}
		if err := decodePayload(req.Payload, &payload); err != nil {
			return nil, err
		}
		return w.eng.Step(payload.Ticks)

	case CommandGetState:
		return w.eng.GetState()

	case CommandLoadScenario:
		var model scenario.Model
		if err := decodePayload(req.Payload, &model); err != nil {
			return nil, err
		}
		return nil, w.eng.LoadScenario(model)

	case CommandSaveScenario:
		return w.eng.SaveScenario()

	case CommandSnapshot:
		return w.eng.Snapshot()

	case CommandRestoreSnapshot:
		var snap scenario.Snapshot
		if err := decodePayload(req.Payload, &snap); err != nil {
			return nil, err
		}
		return nil, w.eng.RestoreSnapshot(snap)

	case CommandDispose:
		return nil, w.eng.Dispose()

	default:
		return nil, fmt.Errorf("worker: unknown command %q", req.Command)
	}
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("worker: missing payload")
	}
	return json.Unmarshal(raw, dst)
}

func okResponse(id int, data any) Response {
	resp := Response{Type: "response", ID: id, OK: true}
	if data == nil {
		return resp
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return errorResponse(id, err)
	}
	if string(encoded) != "null" {
		resp.Data = encoded
	}
	return resp
}

func errorResponse(id int, err error) Response {
	return Response{Type: "response", ID: id, OK: false, Error: err.Error()}
}
