package model

import (
	"encoding/json"
	"fmt"
)

// Status is the closed task lifecycle enum. It is stored as its numeric
// code and serialized as the wire string clients see.
type Status int

const (
	// StatusPending is the state every task is created in.
	StatusPending Status = iota
	// StatusInProgress marks a task as actively worked on.
	StatusInProgress
	// StatusCompleted marks a task as done.
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusPending:    "pendent",
	StatusInProgress: "on going",
	StatusCompleted:  "completed",
}

var statusCodes = map[string]Status{
	"pendent":   StatusPending,
	"on going":  StatusInProgress,
	"completed": StatusCompleted,
}

// StatusFromCode resolves a caller-supplied numeric code. It is the single
// source of truth for the code mapping: 0 pendent, 1 on going, 2 completed.
func StatusFromCode(code int) (Status, error) {
	s := Status(code)
	if _, ok := statusNames[s]; !ok {
		return 0, fmt.Errorf("unknown status code %d", code)
	}
	return s, nil
}

// Code returns the numeric wire code of the status.
func (s Status) Code() int {
	return int(s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalJSON emits the wire string, e.g. "pendent".
func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON accepts the wire string form.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := statusCodes[name]
	if !ok {
		return fmt.Errorf("unknown status %q", name)
	}
	*s = parsed
	return nil
}
