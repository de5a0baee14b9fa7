package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	loads, plans, renders int
}

func (h *testPipelineHooks) OnLoadStart(context.Context, string, string) { h.loads++ }
func (h *testPipelineHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {
}
func (h *testPipelineHooks) OnPlanStart(context.Context, int)                     { h.plans++ }
func (h *testPipelineHooks) OnPlanComplete(context.Context, time.Duration, error) {}
func (h *testPipelineHooks) OnRenderStart(context.Context, []string)              { h.renders++ }
func (h *testPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "layout.yaml", "keymap.yaml")
	p.OnLoadComplete(ctx, 42, 3, time.Second, nil)
	p.OnPlanStart(ctx, 42)
	p.OnPlanComplete(ctx, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should keep the previous hooks")
	}
}
