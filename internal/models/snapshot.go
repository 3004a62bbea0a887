package models

import json "github.com/goccy/go-json"

type Kind string

const (
	KindStopwatch Kind = "stopwatch"
	KindTimer     Kind = "timer"
)

func (k Kind) Valid() bool {
	return k == KindStopwatch || k == KindTimer
}

// Snapshot is the persisted form of one widget. Local and remote stores
// share it. Times are unix milliseconds, durations are milliseconds.
type Snapshot struct {
	ID               string `json:"id" validate:"required"`
	Kind             Kind   `json:"kind"`
	IsRunning        bool   `json:"isRunning"`
	StartTime        int64  `json:"startTime" validate:"min:0"`
	ElapsedTime      int64  `json:"elapsedTime" validate:"min:0"`
	Title            string `json:"title" validate:"maxLen:256"`
	TargetTime       int64  `json:"targetTime" validate:"min:0"`
	RemainingTime    int64  `json:"remainingTime" validate:"min:0"`
	OriginalDuration int64  `json:"originalDuration" validate:"min:0"`
}

// UnmarshalJSON also accepts records written with "type" instead of "kind".
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	aux := struct {
		*plain
		Type Kind `json:"type"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.Kind == "" {
		s.Kind = aux.Type
	}
	return nil
}
