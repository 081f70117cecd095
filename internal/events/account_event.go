package events

import (
	"strconv"
	"time"
)

type EventType string

const (
	UserRegistered EventType = "user.registered"
	ProfileUpdated EventType = "profile.updated"
	AccountDeleted EventType = "account.deleted"
)

type AccountEvent struct {
	Type      EventType
	UserID    string
	Timestamp int64
}

func NewAccountEvent(t EventType, userID string) *AccountEvent {
	return &AccountEvent{Type: t, UserID: userID, Timestamp: time.Now().Unix()}
}

func (e *AccountEvent) fields() map[string]interface{} {
	return map[string]interface{}{
		"type":      string(e.Type),
		"user_id":   e.UserID,
		"timestamp": e.Timestamp,
	}
}

// parseAccountEvent reads a stream entry back into an event. ok is false for
// entries missing a type or user id.
func parseAccountEvent(values map[string]interface{}) (*AccountEvent, bool) {
	typ, _ := values["type"].(string)
	userID, _ := values["user_id"].(string)
	if typ == "" || userID == "" {
		return nil, false
	}

	e := &AccountEvent{Type: EventType(typ), UserID: userID}
	if ts, ok := values["timestamp"].(string); ok {
		e.Timestamp, _ = strconv.ParseInt(ts, 10, 64)
	}
	return e, true
}
