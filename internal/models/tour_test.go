package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTourMarshalDerivesDurationWeeks(t *testing.T) {
	tour := Tour{Name: "The Forest Hiker Tour", Duration: 14}

	data, err := json.Marshal(tour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["durationWeeks"] != 2.0 {
		t.Errorf("durationWeeks = %v, want 2", decoded["durationWeeks"])
	}
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	usr := User{Name: "Jane", Email: "jane@example.com", Password: "$2a$12$secret"}

	data, err := json.Marshal(usr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Errorf("password leaked into JSON: %s", data)
	}
}
