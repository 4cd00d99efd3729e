package game

import "testing"

type fakePlanner struct{ tag string }

func (f *fakePlanner) GeneratePath(start, goal Position) *Path { return nil }
func (f *fakePlanner) SalvagePath(old *Path, newStart, newGoal Position) (*Path, bool) {
	return nil, false
}

func TestPlannerRegistry_CurrentReturnsInitial(t *testing.T) {
	initial := &fakePlanner{tag: "initial"}
	reg := NewPlannerRegistry(initial)
	if got := reg.Current().(*fakePlanner); got.tag != "initial" {
		t.Fatalf("expected initial planner, got %v", got.tag)
	}
}

func TestPlannerRegistry_RenewSwapsHandle(t *testing.T) {
	reg := NewPlannerRegistry(&fakePlanner{tag: "initial"})
	ok := reg.Renew(func() (Planner, bool) { return &fakePlanner{tag: "renewed"}, true })
	if !ok {
		t.Fatal("expected renew to succeed")
	}
	if got := reg.Current().(*fakePlanner); got.tag != "renewed" {
		t.Fatalf("expected renewed planner, got %v", got.tag)
	}
}

func TestPlannerRegistry_RenewFailureKeepsCurrent(t *testing.T) {
	reg := NewPlannerRegistry(&fakePlanner{tag: "initial"})
	ok := reg.Renew(func() (Planner, bool) { return nil, false })
	if ok {
		t.Fatal("expected renew to report failure")
	}
	if got := reg.Current().(*fakePlanner); got.tag != "initial" {
		t.Fatalf("expected planner unchanged after failed renew, got %v", got.tag)
	}
}
