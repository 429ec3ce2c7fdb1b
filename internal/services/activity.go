package services

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/buglane-dev/buglane/db"
	"github.com/buglane-dev/buglane/internal/models"
)

// RecordActivity appends an activity row and pushes the event to live feed
// subscribers. Activity is best-effort: a failure here never fails the
// mutation that triggered it.
func RecordActivity(projectID uint, userID *uint, action string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("Failed to marshal activity details: %v", err)
		payload = []byte("{}")
	}

	activity := models.Activity{
		ProjectID: projectID,
		UserID:    userID,
		Action:    action,
		Details:   payload,
	}

	if err := db.DB.Create(&activity).Error; err != nil {
		log.Printf("Failed to record activity %s for project %d: %v", action, projectID, err)
		return
	}

	BroadcastEvent(strconv.FormatUint(uint64(projectID), 10), map[string]interface{}{
		"type":       "activity",
		"action":     action,
		"project_id": projectID,
		"details":    details,
	})
}
