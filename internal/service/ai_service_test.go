package service

import (
	"context"
	"errors"
	"testing"

	"advising_backend/internal/config"
	"advising_backend/internal/util"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"leading prose", "Sure, here it is: {\"a\":1}", `{"a":1}`},
		{"trailing prose", "{\"a\":1} Let me know!", `{"a":1}`},
		{"array", "noise [1, 2, 3] noise", "[1, 2, 3]"},
		{"no json", "no delimiters here", "no delimiters here"},
	}
	for _, tt := range tests {
		if got := CleanJSONResponse(tt.in); got != tt.want {
			t.Errorf("%s: CleanJSONResponse = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewAIServiceRequiresKey(t *testing.T) {
	_, err := NewAIService(config.AIConfig{})
	if !errors.Is(err, util.ErrNoAIProvider) {
		t.Errorf("err = %v, want ErrNoAIProvider", err)
	}
}

func TestGenerateFailsOverOnce(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("quota exceeded")}
	secondary := &fakeProvider{name: "groq", reply: "ok"}
	s := NewAIServiceWithProviders(primary, secondary)

	text, provider, err := s.Generate(context.Background(), "prompt", "system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" || provider != "groq" {
		t.Errorf("got (%q, %q), want (ok, groq)", text, provider)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestGeneratePrefersPrimary(t *testing.T) {
	primary := &fakeProvider{name: "gemini", reply: "from primary"}
	secondary := &fakeProvider{name: "groq", reply: "from secondary"}
	s := NewAIServiceWithProviders(primary, secondary)

	text, provider, err := s.Generate(context.Background(), "prompt", "system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "from primary" || provider != "gemini" {
		t.Errorf("got (%q, %q), want primary reply", text, provider)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestGenerateNoSecondaryPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	s := NewAIServiceWithProviders(&fakeProvider{name: "gemini", err: wantErr}, nil)

	_, _, err := s.Generate(context.Background(), "prompt", "system")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestGenerateOnceSkipsFailover(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("down")}
	secondary := &fakeProvider{name: "groq", reply: "ok"}
	s := NewAIServiceWithProviders(primary, secondary)

	_, _, err := s.GenerateOnce(context.Background(), "prompt", "system")
	if err == nil {
		t.Fatal("expected an error from the single-shot path")
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestGenerateWithoutProviders(t *testing.T) {
	s := NewAIServiceWithProviders(nil, nil)
	if _, _, err := s.Generate(context.Background(), "p", "s"); !errors.Is(err, util.ErrNoAIProvider) {
		t.Errorf("err = %v, want ErrNoAIProvider", err)
	}
	if _, _, err := s.GenerateOnce(context.Background(), "p", "s"); !errors.Is(err, util.ErrNoAIProvider) {
		t.Errorf("GenerateOnce err = %v, want ErrNoAIProvider", err)
	}
}
