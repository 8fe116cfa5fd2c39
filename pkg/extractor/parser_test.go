package extractor

import (
	"reflect"
	"testing"
)

func TestParseContextResponse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		userText     string
		wantOutcome  ParseOutcome
		wantCategory string
		wantUrgency  string
	}{
		{
			name:         "clean json",
			raw:          `{"primary_category": "printer", "urgency_level": "high", "keywords": ["jam"]}`,
			wantOutcome:  OutcomeParsed,
			wantCategory: "printer",
			wantUrgency:  "high",
		},
		{
			name:         "json wrapped in markdown fences",
			raw:          "Here you go:\n```json\n{\"primary_category\": \"router\", \"urgency_level\": \"low\"}\n```",
			wantOutcome:  OutcomeParsed,
			wantCategory: "router",
			wantUrgency:  "low",
		},
		{
			name:         "json with prose around it",
			raw:          `The analysis follows. {"primary_category": "appliance", "urgency_level": "critical"} Hope that helps.`,
			wantOutcome:  OutcomeParsed,
			wantCategory: "appliance",
			wantUrgency:  "critical",
		},
		{
			name:         "braces inside string values",
			raw:          `{"primary_category": "printer", "detected_issues": ["display shows {E03}"], "urgency_level": "medium"}`,
			wantOutcome:  OutcomeParsed,
			wantCategory: "printer",
			wantUrgency:  "medium",
		},
		{
			name:         "no json at all",
			raw:          "I cannot tell what this device is.",
			userText:     "my printer blinks red",
			wantOutcome:  OutcomeFallback,
			wantCategory: "general",
			wantUrgency:  "medium",
		},
		{
			name:         "unbalanced braces",
			raw:          `{"primary_category": "printer"`,
			wantOutcome:  OutcomeFallback,
			wantCategory: "general",
			wantUrgency:  "medium",
		},
		{
			name:         "invalid urgency replaced with default",
			raw:          `{"primary_category": "printer", "urgency_level": "apocalyptic"}`,
			wantOutcome:  OutcomeParsed,
			wantCategory: "printer",
			wantUrgency:  "medium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseContextResponse(tt.raw, tt.userText)
			if got.Outcome != tt.wantOutcome {
				t.Fatalf("got outcome %s, want %s", got.Outcome, tt.wantOutcome)
			}
			if got.Context.PrimaryCategory != tt.wantCategory {
				t.Errorf("got category %q, want %q", got.Context.PrimaryCategory, tt.wantCategory)
			}
			if got.Context.UrgencyLevel != tt.wantUrgency {
				t.Errorf("got urgency %q, want %q", got.Context.UrgencyLevel, tt.wantUrgency)
			}
		})
	}
}

func TestFallbackContextKeywords(t *testing.T) {
	ctx := FallbackContext("my printer is on fire!!")

	want := []string{"printer", "fire"}
	if !reflect.DeepEqual(ctx.Keywords, want) {
		t.Fatalf("got keywords %v, want %v", ctx.Keywords, want)
	}
	if ctx.PrimaryCategory != "general" {
		t.Errorf("got category %q, want general", ctx.PrimaryCategory)
	}
	if ctx.ProblemType != "unknown" {
		t.Errorf("got problem type %q, want unknown", ctx.ProblemType)
	}
}

func TestFallbackContextIsIdempotent(t *testing.T) {
	first := FallbackContext("router shows amber light")
	second := FallbackContext("router shows amber light")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("fallback differs across calls: %v vs %v", first, second)
	}
}

func TestParsedContextGetsEmptySlices(t *testing.T) {
	got := ParseContextResponse(`{"primary_category": "printer", "urgency_level": "low"}`, "")
	if got.Context.Keywords == nil || got.Context.DetectedIssues == nil {
		t.Fatal("expected empty slices, got nil")
	}
}
