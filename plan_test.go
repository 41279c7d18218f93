package transly

import "testing"

func TestPipeline_Plan(t *testing.T) {
	cache := newMapCache()
	cache.Put(CacheKey("known", "en", "fr"), "connu")
	stub := newStubProvider(nil)
	p := newTestPipeline(stub, WithCache(cache))

	plan := p.Plan(records("known", "new", "new", "", "other"))

	stats := plan.Stats()
	want := PlanStats{Cached: 1, Pending: 2, Duplicates: 1, Skipped: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
	if !plan.HasWork() {
		t.Error("plan with pending records should have work")
	}
	if plan.Pending[0].ID != "line_1" || plan.Pending[1].ID != "line_4" {
		t.Errorf("pending records out of order: %+v", plan.Pending)
	}
	if plan.Duplicates[0].ID != "line_2" {
		t.Errorf("Duplicates = %+v", plan.Duplicates)
	}
	if stub.totalCalls() != 0 {
		t.Error("planning must not call the provider")
	}
	if cache.Len() != 1 {
		t.Error("planning must not write the cache")
	}
}

func TestPipeline_Plan_NoCache(t *testing.T) {
	p := newTestPipeline(newStubProvider(nil))

	plan := p.Plan(records("a", "b"))
	if len(plan.Pending) != 2 || len(plan.Cached) != 0 {
		t.Errorf("without a cache everything is pending: %+v", plan.Stats())
	}
}

func TestPipeline_Plan_SameLanguage(t *testing.T) {
	gw := NewGateway(newStubProvider(nil))
	p := NewPipeline("en", gw, WithLogger(quietLogger()))

	plan := p.Plan(records("a", "b"))
	if plan.HasWork() || len(plan.Skipped) != 2 {
		t.Errorf("same-language plan should skip everything: %+v", plan.Stats())
	}
}
