package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading is a single time-series telemetry sample reported by a device.
//
// No invariant beyond field presence is enforced: the device id is not
// checked against a registry, the temperature is not range-checked, and
// timestamps are caller-supplied and need not be monotonic.
type Reading struct {
	// ID is the store-assigned document identifier.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	// DeviceID identifies the originating device. Any string is accepted.
	DeviceID string `bson:"device_id" json:"deviceId"`

	// Temperature is the numeric reading reported by the device.
	Temperature float64 `bson:"temperature" json:"temperature"`

	// Timestamp is the point in time the reading corresponds to.
	// It is supplied by the caller, not assigned by the server.
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// CollectionName returns the default name of the document collection
// associated with the Reading model.
func (r Reading) CollectionName() string {
	return "readings"
}

// ReadingFilter describes the optional query filters for reading lookups.
// All set fields are combined with logical AND.
type ReadingFilter struct {
	// DeviceID, when non-empty, restricts results to an exact device match.
	DeviceID string

	// Start, when non-nil, keeps readings with Timestamp >= Start (inclusive).
	Start *time.Time

	// End, when non-nil, keeps readings with Timestamp <= End (inclusive).
	End *time.Time
}
