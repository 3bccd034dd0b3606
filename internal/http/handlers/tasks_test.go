package handlers

import (
	"encoding/json"
	"testing"
)

func decodeUpdate(t *testing.T, body string) updateTaskRequest {
	t.Helper()
	var req updateTaskRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return req
}

func TestUpdateRequestChanges(t *testing.T) {
	changes, err := decodeUpdate(t, `{"title":"new","completed":true}`).changes()
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if changes.Title == nil || *changes.Title != "new" {
		t.Fatalf("expected title change, got %+v", changes)
	}
	if changes.Completed == nil || !*changes.Completed {
		t.Fatalf("expected completed change, got %+v", changes)
	}
	if changes.Description != nil || changes.DescriptionNull {
		t.Fatalf("absent description must not register a change: %+v", changes)
	}
}

func TestUpdateRequestNullDescriptionClears(t *testing.T) {
	changes, err := decodeUpdate(t, `{"description":null}`).changes()
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if !changes.DescriptionNull {
		t.Fatalf("explicit null must request a clear: %+v", changes)
	}
	if changes.Description != nil {
		t.Fatalf("a clear must not carry a value: %+v", changes)
	}
}

func TestUpdateRequestNullRejected(t *testing.T) {
	for _, body := range []string{`{"title":null}`, `{"completed":null}`} {
		if _, err := decodeUpdate(t, body).changes(); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func TestUpdateRequestBadTypes(t *testing.T) {
	for _, body := range []string{`{"title":7}`, `{"completed":"yes"}`, `{"description":[1]}`} {
		if _, err := decodeUpdate(t, body).changes(); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}
