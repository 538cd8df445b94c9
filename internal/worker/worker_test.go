package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func twoBodyPayload() []body.Body {
	return []body.Body{
		body.New("sun", 1000, 2, vec2.New(0, 0), vec2.New(0, 0)),
		body.New("planet", 1, 0.5, vec2.New(12, 0), vec2.New(0, 9.2)),
	}
}

func TestInitializeThenGetStateRoundTrip(t *testing.T) {
	w := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)
	defer w.Close()

	initPayload := mustMarshal(t, struct {
		Config config.SimulationConfig `json:"config"`
		Bodies []body.Body             `json:"bodies"`
	}{Config: config.Default(), Bodies: twoBodyPayload()})

	resp := w.Submit(ctx, Request{ID: 1, Command: CommandInitialize, Payload: initPayload})
	if !resp.OK {
		t.Fatalf("initialize failed: %s", resp.Error)
	}

	resp = w.Submit(ctx, Request{ID: 2, Command: CommandGetState})
	if !resp.OK {
		t.Fatalf("getState failed: %s", resp.Error)
	}
	var state struct {
		Tick   uint64      `json:"Tick"`
		Bodies []body.Body `json:"Bodies"`
	}
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(state.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(state.Bodies))
	}
}

func TestUnknownCommandReturnsErrorResponse(t *testing.T) {
	w := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)
	defer w.Close()

	resp := w.Submit(ctx, Request{ID: 7, Command: "not-a-command"})
	if resp.OK {
		t.Fatalf("expected failure response")
	}
	if resp.Error == "" {
		t.Errorf("expected a populated error message")
	}
	if resp.ID != 7 {
		t.Errorf("expected response id 7, got %d", resp.ID)
	}
}

func TestOperationOnUninitializedEngineReturnsErrorResponse(t *testing.T) {
	w := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)
	defer w.Close()

	resp := w.Submit(ctx, Request{ID: 1, Command: CommandStep, Payload: mustMarshal(t, struct {
		Ticks int `json:"ticks"`
	}{Ticks: 1})})
	if resp.OK {
		t.Fatalf("expected step on uninitialized engine to fail")
	}
}

func TestRequestsProcessInSubmissionOrder(t *testing.T) {
	w := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)
	defer w.Close()

	initPayload := mustMarshal(t, struct {
		Config config.SimulationConfig `json:"config"`
		Bodies []body.Body             `json:"bodies"`
	}{Config: config.Default(), Bodies: twoBodyPayload()})
	if resp := w.Submit(ctx, Request{ID: 1, Command: CommandInitialize, Payload: initPayload}); !resp.OK {
		t.Fatalf("initialize failed: %s", resp.Error)
	}

	stepPayload := mustMarshal(t, struct {
		Ticks int `json:"ticks"`
	}{Ticks: 3})
	for i := 0; i < 5; i++ {
		resp := w.Submit(ctx, Request{ID: i + 2, Command: CommandStep, Payload: stepPayload})
		if !resp.OK {
			t.Fatalf("step %d failed: %s", i, resp.Error)
		}
	}

	resp := w.Submit(ctx, Request{ID: 99, Command: CommandGetState})
	if !resp.OK {
		t.Fatalf("getState failed: %s", resp.Error)
	}
	var state struct {
		Tick uint64 `json:"Tick"`
	}
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Tick != 15 {
		t.Errorf("expected tick 15 after 5x3 steps, got %d", state.Tick)
	}
}

func TestSubmitTimesOutWhenWorkerNotRunning(t *testing.T) {
	w := New().WithTimeout(20 * time.Millisecond)
	resp := w.Submit(context.Background(), Request{ID: 1, Command: CommandGetState})
	if resp.OK {
		t.Fatalf("expected timeout failure, got success")
	}
}

func TestDisposeThenOperationFails(t *testing.T) {
	w := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)
	defer w.Close()

	initPayload := mustMarshal(t, struct {
		Config config.SimulationConfig `json:"config"`
		Bodies []body.Body             `json:"bodies"`
	}{Config: config.Default(), Bodies: twoBodyPayload()})
	w.Submit(ctx, Request{ID: 1, Command: CommandInitialize, Payload: initPayload})

	resp := w.Submit(ctx, Request{ID: 2, Command: CommandDispose})
	if !resp.OK {
		t.Fatalf("dispose failed: %s", resp.Error)
	}

	resp = w.Submit(ctx, Request{ID: 3, Command: CommandGetState})
	if resp.OK {
		t.Fatalf("expected getState after dispose to fail")
	}
}
