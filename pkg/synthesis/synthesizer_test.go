package synthesis

import (
	"context"
	"errors"
	"testing"

	"device-support-be/internal/entity"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/genai"
)

type fakeGenerator struct {
	result   *genai.Result
	err      error
	contents []*genai.Content
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.Result, error) {
	f.contents = contents
	return f.result, f.err
}

func TestSynthesizeReturnsModelText(t *testing.T) {
	gen := &fakeGenerator{result: &genai.Result{Text: "Replace the toner cartridge."}}
	s := NewSynthesizer(gen)

	reply, err := s.Synthesize(context.Background(), extractor.ExtractedContext{PrimaryCategory: "printer"}, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Replace the toner cartridge." {
		t.Fatalf("got %q", reply)
	}
}

func TestSynthesizeSafetyBlock(t *testing.T) {
	gen := &fakeGenerator{result: &genai.Result{Blocked: true}}
	s := NewSynthesizer(gen)

	reply, err := s.Synthesize(context.Background(), extractor.ExtractedContext{}, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != SafetyBlockedMessage {
		t.Fatalf("got %q, want safety blocked message", reply)
	}
}

func TestSynthesizeEmptyCandidates(t *testing.T) {
	gen := &fakeGenerator{result: &genai.Result{Empty: true}}
	s := NewSynthesizer(gen)

	reply, err := s.Synthesize(context.Background(), extractor.ExtractedContext{}, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != NoResponseMessage {
		t.Fatalf("got %q, want no-response message", reply)
	}
	if reply == "" {
		t.Fatal("reply must never be empty on success")
	}
}

func TestSynthesizeTransportError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	s := NewSynthesizer(gen)

	if _, err := s.Synthesize(context.Background(), extractor.ExtractedContext{}, "", nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestSynthesizeSeedsHistory(t *testing.T) {
	gen := &fakeGenerator{result: &genai.Result{Text: "ok"}}
	s := NewSynthesizer(gen)

	history := []*entity.SessionTurn{
		{Role: "user", Text: "my printer is jammed"},
		{Role: "model", Text: "open the rear tray"},
	}
	if _, err := s.Synthesize(context.Background(), extractor.ExtractedContext{}, "still jammed", nil, history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// two history turns plus the grounding prompt
	if len(gen.contents) != 3 {
		t.Fatalf("got %d contents, want 3", len(gen.contents))
	}
	if gen.contents[0].Role != genai.RoleUser || gen.contents[1].Role != genai.RoleModel {
		t.Fatal("history roles not preserved")
	}
	if gen.contents[2].Role != genai.RoleUser {
		t.Fatal("grounding prompt must be a user turn")
	}
}
