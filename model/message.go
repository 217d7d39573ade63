package model

import "encoding/json"

// Message statuses observed while an async vault submission settles.
const (
	MessageStatusDraft       = "draft"
	MessageStatusProcessing  = "processing"
	MessageStatusSentToProxy = "sent_to_proxy"
	MessageStatusCompleted   = "completed"
	MessageStatusSucceeded   = "succeeded"
	MessageStatusCanceled    = "canceled"
)

// SQSError is an error reported inside a polled message payload.
type SQSError struct {
	StatusCode int    `json:"status_code"`
	ForageCode string `json:"forage_code"`
	Message    string `json:"message"`
}

// Message is the processor's async operation envelope, polled until it
// reaches a terminal state.
type Message struct {
	ContentID   string     `json:"content_id"`
	MessageType string     `json:"message_type"`
	Status      string     `json:"status"`
	Failed      bool       `json:"failed"`
	Errors      []SQSError `json:"errors"`
}

// UnmarshalJSON tolerates a non-array "errors" field, which the processor
// emits on some paths; it decodes as an empty slice.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias struct {
		ContentID   string          `json:"content_id"`
		MessageType string          `json:"message_type"`
		Status      string          `json:"status"`
		Failed      bool            `json:"failed"`
		Errors      json.RawMessage `json:"errors"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	m.ContentID = a.ContentID
	m.MessageType = a.MessageType
	m.Status = a.Status
	m.Failed = a.Failed
	m.Errors = nil
	if len(a.Errors) > 0 {
		var errs []SQSError
		if err := json.Unmarshal(a.Errors, &errs); err == nil {
			m.Errors = errs
		}
	}
	return nil
}

// Pending reports whether the message is still in a non-terminal state.
func (m *Message) Pending() bool {
	if m.Failed {
		return false
	}
	switch m.Status {
	case MessageStatusCompleted, MessageStatusSucceeded, MessageStatusCanceled:
		return false
	}
	return true
}

// Err converts a failed message into a ForageError, preferring the first
// structured SQS error.
func (m *Message) Err() *ForageError {
	if sqs := m.firstError(); sqs != nil {
		return NewHTTPError(sqs.StatusCode, sqs.ForageCode, sqs.Message)
	}
	if m.Status == MessageStatusCanceled {
		return NewHTTPError(0, CodeHTTPError, "operation was canceled by the processor")
	}
	return NewHTTPError(0, CodeHTTPError, "operation failed without a structured error")
}

func (m *Message) firstError() *SQSError {
	if len(m.Errors) == 0 {
		return nil
	}
	return &m.Errors[0]
}
