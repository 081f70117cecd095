package events

import (
	"context"
	"testing"
)

func TestParseAccountEvent(t *testing.T) {
	e, ok := parseAccountEvent(map[string]interface{}{
		"type":      "account.deleted",
		"user_id":   "u1",
		"timestamp": "1700000000",
	})
	if !ok {
		t.Fatal("expected event to parse")
	}
	if e.Type != AccountDeleted || e.UserID != "u1" || e.Timestamp != 1700000000 {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestParseAccountEvent_Malformed(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"type": "account.deleted"},
		{"user_id": "u1"},
		{"type": 5, "user_id": "u1"},
	}
	for _, values := range cases {
		if _, ok := parseAccountEvent(values); ok {
			t.Errorf("expected %v to be rejected", values)
		}
	}
}

func TestAccountEvent_FieldsRoundTripKeys(t *testing.T) {
	f := NewAccountEvent(UserRegistered, "u1").fields()

	if f["type"] != "user.registered" || f["user_id"] != "u1" {
		t.Errorf("unexpected fields: %v", f)
	}
	if _, ok := f["timestamp"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestAccountProducer_NilClientIsNoop(t *testing.T) {
	p := NewAccountProducer(nil, "account:events")

	if err := p.Publish(context.Background(), NewAccountEvent(ProfileUpdated, "u1")); err != nil {
		t.Errorf("expected no-op publish, got %v", err)
	}
	if n, err := p.StreamLength(context.Background()); n != 0 || err != nil {
		t.Errorf("expected 0, nil; got %d, %v", n, err)
	}
}
