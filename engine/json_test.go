package engine_test

import (
	"strings"
	"testing"

	"github.com/symbridge/symbridge/engine"
)

func TestJSON_RoundTrip(t *testing.T) {
	x := engine.Var("x")
	e := engine.Sum(engine.Power(x, engine.Int(2)), engine.Int(-4))
	s, err := engine.ToJSON(e)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	back, err := engine.Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !back.Equal(e) {
		t.Errorf("round trip changed the expression: %s vs %s", back.String(), e.String())
	}
}

func TestJSON_ApproxSurvives(t *testing.T) {
	s, err := engine.ToJSON(engine.Rat(1, 2).Approx(15))
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	back, err := engine.Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if back.String() != "0.5" {
		t.Errorf("approx rendering should survive the round trip, got %s", back.String())
	}
}

func TestFromJSON_MissingType(t *testing.T) {
	if _, err := engine.FromJSON(map[string]interface{}{"value": "1"}); err == nil {
		t.Errorf("missing type should fail")
	}
}

func TestFromJSON_UnknownType(t *testing.T) {
	_, err := engine.FromJSON(map[string]interface{}{"type": "matrix"})
	if err == nil || !strings.Contains(err.Error(), "unknown expression type") {
		t.Errorf("unknown type should fail, got %v", err)
	}
}

func TestFromJSON_BadNumValue(t *testing.T) {
	if _, err := engine.FromJSON(map[string]interface{}{"type": "num", "value": "abc"}); err == nil {
		t.Errorf("malformed num value should fail")
	}
}

func TestParse_BadJSON(t *testing.T) {
	if _, err := engine.Parse("{not json"); err == nil {
		t.Errorf("malformed JSON should fail")
	}
}
