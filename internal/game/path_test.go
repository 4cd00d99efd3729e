package game

import "testing"

func TestPath_ConsumptionAndMovement(t *testing.T) {
	p := NewPath(NewPosition(0, 0), NewPosition(20, 0), []Position{
		NewPosition(0, 0), NewPosition(10, 0), NewPosition(20, 0),
	})
	if !p.AtNextPosition(NewPosition(0.001, 0), 0.01) {
		t.Fatal("expected to be at the first waypoint")
	}
	p.ConsumeNext()
	if p.AtNextPosition(NewPosition(0, 0), 0.01) {
		t.Fatal("first waypoint should have been consumed")
	}
	v := p.NextMovement(NewPosition(0, 0), 5)
	if v.Magnitude() < 4.999 || v.Magnitude() > 5.001 {
		t.Fatalf("expected magnitude 5, got %f", v.Magnitude())
	}
	if v.Y != 0 || v.X <= 0 {
		t.Fatalf("expected movement toward +x, got %v", v)
	}
}

func TestPath_NextMovement_Exhausted(t *testing.T) {
	p := NewPath(NewPosition(0, 0), NewPosition(1, 0), []Position{NewPosition(0, 0), NewPosition(1, 0)})
	p.ConsumeNext()
	p.ConsumeNext()
	v := p.NextMovement(NewPosition(0, 0), 5)
	if v.Magnitude() != 0 {
		t.Fatalf("expected zero velocity once exhausted, got %v", v)
	}
}

func TestSalvage_RejectsShortPath(t *testing.T) {
	old := NewPath(NewPosition(0, 0), NewPosition(10, 0), []Position{NewPosition(0, 0), NewPosition(10, 0)})
	if _, ok := Salvage(old, NewPosition(1, 0), NewPosition(9, 0), 5.0, 3); ok {
		t.Fatal("expected salvage to reject a 2-point path when minPoints is 3")
	}
}

func TestSalvage_RewritesOnlyLastPoint(t *testing.T) {
	old := NewPath(NewPosition(100, 200), NewPosition(500, 200), []Position{
		NewPosition(100, 200), NewPosition(300, 100), NewPosition(500, 200),
	})
	salvaged, ok := Salvage(old, NewPosition(101, 201), NewPosition(499, 199), 5.0, 3)
	if !ok {
		t.Fatal("expected salvage to succeed")
	}
	if !salvaged.points[0].Equal(NewPosition(100, 200)) {
		t.Fatalf("expected first point unchanged, got %v", salvaged.points[0])
	}
	if !salvaged.points[1].Equal(NewPosition(300, 100)) {
		t.Fatalf("expected interior point unchanged, got %v", salvaged.points[1])
	}
	if !salvaged.points[2].Equal(NewPosition(499, 199)) {
		t.Fatalf("expected last point rewritten, got %v", salvaged.points[2])
	}
}

func TestSalvage_RejectsWhenEndpointsMovedTooFar(t *testing.T) {
	old := NewPath(NewPosition(100, 200), NewPosition(500, 200), []Position{
		NewPosition(100, 200), NewPosition(300, 100), NewPosition(500, 200),
	})
	if _, ok := Salvage(old, NewPosition(200, 200), NewPosition(499, 199), 5.0, 3); ok {
		t.Fatal("expected salvage to reject a start that moved past the threshold")
	}
}
