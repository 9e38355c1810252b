package enum

import "encoding/json"

// SessionState represents the lifecycle state of the active cart session
type SessionState int

const (
	SessionStateEmpty     SessionState = 0
	SessionStateBuilding  SessionState = 1
	SessionStateCharging  SessionState = 2
	SessionStateCompleted SessionState = 3
)

func (s SessionState) String() string {
	return [...]string{"Empty", "Building", "Charging", "Completed"}[s]
}

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
