package service

import (
	"context"
	"errors"
	"testing"
)

func TestSuggestResourcesEmptyTopicsUsesFallback(t *testing.T) {
	provider := &fakeProvider{name: "gemini", reply: "[]"}
	s := NewResourceService(NewAIServiceWithProviders(provider, nil))

	resources := s.SuggestResources(context.Background(), nil, LevelAverage)
	if len(resources) != 5 {
		t.Fatalf("expected the 5 curated resources, got %d", len(resources))
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for empty topics, want 0", provider.calls)
	}
}

func TestSuggestResourcesFallbackOnProviderError(t *testing.T) {
	provider := &fakeProvider{name: "gemini", err: errors.New("down")}
	s := NewResourceService(NewAIServiceWithProviders(provider, nil))

	resources := s.SuggestResources(context.Background(), []string{"Pointers"}, LevelLow)
	if len(resources) != 5 {
		t.Fatalf("expected fallback resources, got %d", len(resources))
	}
	if resources[0].Title != "freeCodeCamp - Full Programming Course" {
		t.Errorf("unexpected first fallback: %q", resources[0].Title)
	}
}

func TestSuggestResourcesFallbackOnBadReply(t *testing.T) {
	for _, reply := range []string{"not json at all", "{}", "[]"} {
		provider := &fakeProvider{name: "gemini", reply: reply}
		s := NewResourceService(NewAIServiceWithProviders(provider, nil))

		resources := s.SuggestResources(context.Background(), []string{"Loops"}, LevelAverage)
		if len(resources) != 5 {
			t.Errorf("reply %q: expected fallback, got %d resources", reply, len(resources))
		}
	}
}

func TestSuggestResourcesParsesAndCaps(t *testing.T) {
	reply := `[
		{"title":"A","type":"video","url":"https://a","description":"a"},
		{"title":"B","type":"video","url":"https://b","description":"b"},
		{"title":"C","type":"video","url":"https://c","description":"c"},
		{"title":"D","type":"video","url":"https://d","description":"d"},
		{"title":"E","type":"video","url":"https://e","description":"e"},
		{"title":"F","type":"video","url":"https://f","description":"f"}
	]`
	provider := &fakeProvider{name: "gemini", reply: "```json\n" + reply + "\n```"}
	s := NewResourceService(NewAIServiceWithProviders(provider, nil))

	resources := s.SuggestResources(context.Background(), []string{"Graphs"}, LevelHigh)
	if len(resources) != 5 {
		t.Fatalf("expected the list capped at 5, got %d", len(resources))
	}
	if resources[0].Title != "A" {
		t.Errorf("first resource = %q, want A", resources[0].Title)
	}
}

func TestFallbackResourcesShape(t *testing.T) {
	resources := FallbackResources()
	if len(resources) != 5 {
		t.Fatalf("expected 5 curated resources, got %d", len(resources))
	}
	for i, r := range resources {
		if r.Title == "" || r.Type == "" || r.URL == "" || r.Description == "" {
			t.Errorf("resource %d incomplete: %+v", i, r)
		}
	}
}
