package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DocumentEvent is an append-only audit record of a lifecycle action, with a
// snapshot of the document at that point.
type DocumentEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	DocType   string         `json:"doc_type" gorm:"type:varchar(20);index:idx_document_events_doc,priority:1"`
	DocId     string         `json:"doc_id" gorm:"index:idx_document_events_doc,priority:2"`
	Action    string         `json:"action" gorm:"type:varchar(32)"`
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewDocumentEvent snapshots doc as JSON. A marshal failure leaves the
// snapshot empty rather than failing the surrounding transaction.
func NewDocumentEvent(docType, docId, action string, doc any) DocumentEvent {
	blob, err := json.Marshal(doc)
	if err != nil {
		blob = nil
	}
	return DocumentEvent{
		DocType:  docType,
		DocId:    docId,
		Action:   action,
		Snapshot: datatypes.JSON(blob),
	}
}
