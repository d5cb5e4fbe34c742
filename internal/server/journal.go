package server

import (
	"encoding/json"
	"log"

	"library-browser/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// journal persists browse diagnostics. Without a database it only logs.
type journal struct {
	db *gorm.DB
}

func newJournal(conn *gorm.DB) *journal {
	return &journal{db: conn}
}

func (j *journal) Record(sessionID, eventType string, payload EventPayload) error {
	if j == nil || j.db == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		SessionID: sessionID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
	}
	return j.db.Create(&event).Error
}

func (s *Server) recordEvent(sessionID, eventType string, payload EventPayload) {
	if err := s.journal.Record(sessionID, eventType, payload); err != nil {
		log.Printf("journal write failed session_id=%s type=%s error=%v", sessionID, eventType, err)
	}
}
