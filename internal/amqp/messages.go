package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GoalStatusMessage is the digest event published when a goal falls behind
// its pledge schedule. It carries the derived status and shortfall so
// consumers don't need to re-run the projection.
type GoalStatusMessage struct {
	GoalID    uuid.UUID `json:"goal_id"`
	GoalName  string    `json:"goal_name"`
	Status    string    `json:"status"`
	Shortfall string    `json:"shortfall"`
	Timestamp time.Time `json:"timestamp"`
}

func NewGoalStatusMessage(goalID uuid.UUID, goalName, status, shortfall string) *GoalStatusMessage {
	return &GoalStatusMessage{
		GoalID:    goalID,
		GoalName:  goalName,
		Status:    status,
		Shortfall: shortfall,
		Timestamp: time.Now(),
	}
}

func (m *GoalStatusMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func GoalStatusMessageFromJSON(data []byte) (*GoalStatusMessage, error) {
	var msg GoalStatusMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
