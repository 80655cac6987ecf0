package models

import (
	"github.com/jlexm/turtle-tracker-svc/common/qr"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"time"
)

type PubSubTurtleMessage struct {
	ChangeType string `json:"change_type"`
	TurtleID   string `json:"turtle_id"`
}

func GetPubSubTurtleMessage(turtleID string, changeType string) *PubSubTurtleMessage {
	return &PubSubTurtleMessage{
		ChangeType: changeType,
		TurtleID:   turtleID,
	}
}

// Stats is the chart data of the dashboard
type Stats struct {
	RescueTrends []records.DateCount `json:"rescueTrends"`
	LengthWeight []records.Sample    `json:"lengthWeight"`
}

// History is the ordered history of one record
type History struct {
	ID      string                `json:"id"`
	Entries []records.HistoryView `json:"entries"`
}

// ScanEvent is one scanner result as posted by the client, Error set when the frame did not decode
type ScanEvent struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ScanRequest carries the scanner results in the order they were produced
//
//nolint:lll
type ScanRequest struct {
	Events  []ScanEvent `json:"events" validate:"required,min=1,max=500"`
	Timeout string      `json:"timeout,omitempty" validate:"omitempty,scan_timeout"`
}

// QREvents converts the posted results into scanner events
func (s ScanRequest) QREvents() []qr.Event {
	events := make([]qr.Event, 0, len(s.Events))
	for _, event := range s.Events {
		if event.Error != "" {
			events = append(events, qr.Event{Err: scanError(event.Error)})

			continue
		}
		events = append(events, qr.Event{Text: event.Text})
	}

	return events
}

// WaitFor returns the scan timeout capped at limit, fallback when none or an invalid one was posted
func (s ScanRequest) WaitFor(fallback time.Duration, limit time.Duration) time.Duration {
	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil || timeout <= 0 {
		return fallback
	}
	if timeout > limit {
		return limit
	}

	return timeout
}

type scanError string

func (e scanError) Error() string {
	return string(e)
}
