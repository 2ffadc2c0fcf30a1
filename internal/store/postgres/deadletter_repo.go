package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/worker"
	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
)

// deadLetterRow is the table shape for recorded dead letters. Payload and
// metadata are stored as raw JSON text so records can be replayed verbatim.
type deadLetterRow struct {
	ID        int64  `gorm:"primaryKey"`
	MessageID string `gorm:"size:64;index"`
	Queue     string `gorm:"size:255;index"`
	Payload   string `gorm:"type:text"`
	Metadata  string `gorm:"type:text"`
	Kind      string `gorm:"size:40"`
	Reason    string `gorm:"type:text"`
	FailedAt  time.Time
	CreatedAt time.Time
}

func (deadLetterRow) TableName() string { return "dead_letters" }

// DeadLetterRepo persists dead-letter records so terminally failed
// messages can be inspected after the broker copy expires.
type DeadLetterRepo struct{ db *gorm.DB }

func NewDeadLetterRepo(db *gorm.DB) *DeadLetterRepo { return &DeadLetterRepo{db: db} }

func (r *DeadLetterRepo) Record(ctx context.Context, letter worker.DeadLetter) error {
	metadata := ""
	if letter.Metadata != nil {
		encoded, err := jsoncodec.Marshal(letter.Metadata)
		if err != nil {
			return err
		}
		metadata = string(encoded)
	}

	row := deadLetterRow{
		MessageID: letter.MessageID,
		Queue:     letter.Queue,
		Payload:   string(letter.Payload),
		Metadata:  metadata,
		Kind:      letter.Kind,
		Reason:    letter.Reason,
		FailedAt:  letter.FailedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}
