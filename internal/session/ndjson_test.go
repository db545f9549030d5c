package session_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/session"
)

func TestNDJSONEmitter_OneCompleteObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	emitter := session.NewNDJSONEmitter(&buf)

	answer := "pong"
	node := "call_openai"
	events := []domain.StreamEvent{
		domain.NewPartialEvent("OpenAI", &node, &answer,
			domain.StatusInfo{Status: 200, Detail: "stop"},
			[]domain.Message{{Role: "assistant", Content: "[OpenAI] pong"}},
		),
		domain.NewErrorEvent("boom"),
	}
	for _, ev := range events {
		if err := emitter.Emit(ev); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var partial map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &partial); err != nil {
		t.Fatalf("line 0 is not valid JSON: %v", err)
	}
	if partial["type"] != "partial" || partial["model"] != "OpenAI" {
		t.Errorf("partial line = %v", partial)
	}
	if partial["node"] != "call_openai" {
		t.Errorf("node = %v, want call_openai", partial["node"])
	}

	var errEv map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &errEv); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if errEv["type"] != "error" || errEv["message"] != "boom" {
		t.Errorf("error line = %v", errEv)
	}
}

func TestNDJSONEmitter_NullAnswerOnFailure(t *testing.T) {
	var buf bytes.Buffer
	emitter := session.NewNDJSONEmitter(&buf)

	node := "call_gemini"
	ev := domain.NewPartialEvent("Gemini", &node, nil,
		domain.StatusInfo{Status: domain.StatusMarkerError, Detail: "connection refused"},
		[]domain.Message{{Role: "assistant", Content: "[Gemini 오류] connection refused"}},
	)
	if err := emitter.Emit(ev); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	line, err := bufio.NewReader(&buf).ReadString('\n')
	if err != nil {
		t.Fatalf("reading line: %v", err)
	}
	if !strings.Contains(line, `"answer":null`) {
		t.Errorf("line %q should carry an explicit null answer", line)
	}
	if !strings.Contains(line, `"status":{"status":"error"`) {
		t.Errorf("line %q should carry the error marker status", line)
	}
	if !strings.Contains(line, "오류") {
		t.Errorf("line %q should keep the error label unescaped", line)
	}
}
