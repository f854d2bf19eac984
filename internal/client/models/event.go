package models

// Event is one audit log record. ID ascends and doubles as the pagination
// cursor. Timestamp is normalized to unix milliseconds at ingestion.
type Event struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Type      string    `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Info      EventInfo `json:"info"`
}

// EventInfo is the per-type payload envelope of an event. Which fields are
// populated depends on Event.Type: file events carry UUID+Metadata (and
// OldMetadata for renames), folder events UUID+Name (and OldName), account
// events plain fields like Email or Code. Metadata, OldMetadata, Name and
// OldName are encrypted envelopes.
type EventInfo struct {
	UUID          string `json:"uuid,omitempty"`
	Metadata      string `json:"metadata,omitempty"`
	OldMetadata   string `json:"oldMetadata,omitempty"`
	Name          string `json:"name,omitempty"`
	OldName       string `json:"oldName,omitempty"`
	ReceiverEmail string `json:"receiverEmail,omitempty"`
	SharerEmail   string `json:"sharerEmail,omitempty"`
	Email         string `json:"email,omitempty"`
	Code          string `json:"code,omitempty"`
	Count         int    `json:"count,omitempty"`
	IP            string `json:"ip,omitempty"`
	UserAgent     string `json:"userAgent,omitempty"`
}
