package dispatch

import (
	"errors"
	"testing"

	"github.com/karamlee/polyask/internal/domain"
)

func TestNormalize_Success(t *testing.T) {
	answer := "pong"
	outcome := domain.Outcome{
		Provider: "OpenAI",
		Node:     "call_openai",
		Answer:   &answer,
		Status:   domain.StatusInfo{Status: 200, Detail: "stop"},
	}

	ev := Normalize(outcome)

	if ev.Type != domain.EventTypePartial {
		t.Errorf("Type = %q, want partial", ev.Type)
	}
	if ev.Model != "OpenAI" {
		t.Errorf("Model = %q, want OpenAI", ev.Model)
	}
	if ev.Node == nil || *ev.Node != "call_openai" {
		t.Errorf("Node = %v, want call_openai", ev.Node)
	}
	if len(ev.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(ev.Messages))
	}
	if ev.Messages[0].Role != "assistant" {
		t.Errorf("Role = %q, want assistant", ev.Messages[0].Role)
	}
	if ev.Messages[0].Content != "[OpenAI] pong" {
		t.Errorf("Content = %q, want %q", ev.Messages[0].Content, "[OpenAI] pong")
	}
}

func TestNormalize_Failure(t *testing.T) {
	outcome := domain.Outcome{
		Provider: "Gemini",
		Node:     "call_gemini",
		Status:   domain.StatusInfo{Status: domain.StatusMarkerError, Detail: "connection refused"},
		Err:      errors.New("connection refused"),
	}

	ev := Normalize(outcome)

	if ev.Answer != nil {
		t.Errorf("Answer = %v, want nil", ev.Answer)
	}
	if got, want := ev.Messages[0].Content, "[Gemini 오류] connection refused"; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}
