package realtime

import (
	"time"

	"wenlock-health-server/internal/models"
)

// MessageType is the "type" field of a push envelope
type MessageType string

const (
	MessageTokenUpdate      MessageType = "token_update"
	MessageInventoryUpdate  MessageType = "inventory_update"
	MessageEmergencyAlert   MessageType = "emergency_alert"
	MessageActivityLog      MessageType = "activity_log"
	MessageConnectionStatus MessageType = "connection_status"
	MessageRequestData      MessageType = "request_data"

	// Sent by clients; answered with MessagePong.
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
)

// Connection status values
const (
	StatusConnected = "connected"
	StatusSynced    = "synced"
)

// Token update actions
const (
	TokenActionAdvanced       = "advanced"
	TokenActionReset          = "reset"
	TokenActionCreated        = "created"
	TokenActionDoctorAdvanced = "doctor_advanced"
)

// Alert update actions
const (
	AlertActionRaised    = "raised"
	AlertActionDismissed = "dismissed"
)

// Payload is the data carried by one kind of envelope. The set of payloads is
// closed: only types in this package implement it.
type Payload interface {
	messageType() MessageType
}

// Message is the envelope written to every subscriber
type Message struct {
	Type      MessageType `json:"type"`
	Data      Payload     `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage wraps p in an envelope stamped with at.
func NewMessage(p Payload, at time.Time) Message {
	return Message{
		Type:      p.messageType(),
		Data:      p,
		Timestamp: at,
	}
}

// TokenUpdate reports a change to a queue: an OT token advanced, reset or
// created, or a doctor's consultation token moved on.
type TokenUpdate struct {
	Action       string         `json:"action"`
	DepartmentID *uint          `json:"departmentId"`
	Token        *models.Token  `json:"token,omitempty"`
	Doctor       *models.Doctor `json:"doctor,omitempty"`
}

func (TokenUpdate) messageType() MessageType { return MessageTokenUpdate }

// InventoryUpdate carries the low-stock list, and the medicine that changed
// when the update was caused by a stock adjustment.
type InventoryUpdate struct {
	Medicine          *models.Medicine  `json:"medicine,omitempty"`
	LowStockMedicines []models.Medicine `json:"lowStockMedicines"`
}

func (InventoryUpdate) messageType() MessageType { return MessageInventoryUpdate }

type EmergencyAlertUpdate struct {
	Action string                `json:"action"`
	Alert  models.EmergencyAlert `json:"alert"`
}

func (EmergencyAlertUpdate) messageType() MessageType { return MessageEmergencyAlert }

// ActivityLogEntry is a newly appended activity log line
type ActivityLogEntry struct {
	models.ActivityLog
}

func (ActivityLogEntry) messageType() MessageType { return MessageActivityLog }

type ConnectionStatus struct {
	Status      string     `json:"status"`
	ClientCount int        `json:"clientCount"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
}

func (ConnectionStatus) messageType() MessageType { return MessageConnectionStatus }

// Snapshot is the full front-desk state sent in answer to request_data.
// It travels as a connection_status envelope.
type Snapshot struct {
	Departments []models.Department     `json:"departments"`
	Doctors     []models.Doctor         `json:"doctors"`
	Tokens      []models.Token          `json:"tokens"`
	Medicines   []models.Medicine       `json:"medicines"`
	Alerts      []models.EmergencyAlert `json:"alerts"`
	Logs        []models.ActivityLog    `json:"logs"`
}

func (Snapshot) messageType() MessageType { return MessageConnectionStatus }

// Pong answers a client ping. It has no fields.
type Pong struct{}

func (Pong) messageType() MessageType { return MessagePong }

// clientMessage is what subscribers send to the server
type clientMessage struct {
	Type MessageType `json:"type"`
}
