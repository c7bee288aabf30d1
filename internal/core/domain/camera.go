package domain

import (
	"errors"
	"time"
)

const (
	CameraActive   = "active"
	CameraInactive = "inactive"
)

var ErrCameraNotFound = errors.New("camera not found")

// Camera is a roadside ANPR camera registered with the platform.
type Camera struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Location   string    `json:"location" bson:"location"`
	IPAddress  string    `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	StreamURL  string    `json:"stream_url,omitempty" bson:"stream_url,omitempty"`
	Status     string    `json:"status" bson:"status"`
	LastActive time.Time `json:"last_active" bson:"last_active"`
}
