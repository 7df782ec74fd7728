package crm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InteractionChannel represents the channel an interaction happened on
type InteractionChannel string

const (
	InteractionChannelPhone   InteractionChannel = "phone"
	InteractionChannelWechat  InteractionChannel = "wechat"
	InteractionChannelEmail   InteractionChannel = "email"
	InteractionChannelOffline InteractionChannel = "offline"
	InteractionChannelOther   InteractionChannel = "other"
)

// Attachment describes a file referenced by an interaction. Only metadata is
// stored; the file itself lives wherever the URL points.
type Attachment struct {
	URL      string `json:"url"`
	FileName string `json:"fileName,omitempty"`
	FileSize *int64 `json:"fileSize,omitempty"`
}

// AttachmentList is stored as a JSONB column
type AttachmentList []Attachment

// Value implements driver.Valuer
func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *AttachmentList) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported attachment list type %T", value)
	}
}

// Interaction records a single touchpoint with a customer. The owning
// customer is fixed at creation time; Stage is a snapshot of the customer's
// pipeline stage when the interaction happened and does not follow later
// status changes.
type Interaction struct {
	shared.BaseEntity
	CustomerID  uuid.UUID          `gorm:"type:uuid;not null;index:idx_interactions_customer_happened,priority:1"`
	HappenedAt  time.Time          `gorm:"not null;index:idx_interactions_customer_happened,priority:2,sort:desc"`
	Channel     InteractionChannel `gorm:"type:varchar(30);not null"`
	Stage       CustomerStatus     `gorm:"type:varchar(30)"` // optional snapshot
	Title       string             `gorm:"type:varchar(200);not null"`
	Summary     string             `gorm:"type:text"`
	RawContent  string             `gorm:"type:text"`
	NextAction  string             `gorm:"type:varchar(500)"`
	Attachments AttachmentList     `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Interaction) TableName() string {
	return "interactions"
}

// NewInteraction creates a new interaction for a customer
func NewInteraction(customerID uuid.UUID, happenedAt time.Time, channel InteractionChannel, title string) (*Interaction, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID is required")
	}
	if happenedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_HAPPENED_AT", "Occurrence time is required")
	}
	if err := validateInteractionChannel(channel); err != nil {
		return nil, err
	}
	if err := validateInteractionTitle(title); err != nil {
		return nil, err
	}

	return &Interaction{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		HappenedAt: happenedAt.UTC(),
		Channel:    channel,
		Title:      strings.TrimSpace(title),
	}, nil
}

// Reschedule moves the interaction to another occurrence time
func (i *Interaction) Reschedule(happenedAt time.Time) error {
	if happenedAt.IsZero() {
		return shared.NewDomainError("INVALID_HAPPENED_AT", "Occurrence time is required")
	}

	i.HappenedAt = happenedAt.UTC()
	i.Touch()

	return nil
}

// SetChannel changes the interaction channel
func (i *Interaction) SetChannel(channel InteractionChannel) error {
	if err := validateInteractionChannel(channel); err != nil {
		return err
	}

	i.Channel = channel
	i.Touch()

	return nil
}

// SetStage sets the customer-stage snapshot; empty clears it
func (i *Interaction) SetStage(stage CustomerStatus) error {
	if stage != "" {
		if err := validateCustomerStatus(stage); err != nil {
			return err
		}
	}

	i.Stage = stage
	i.Touch()

	return nil
}

// SetContent sets the interaction's textual content
func (i *Interaction) SetContent(title, summary, rawContent, nextAction string) error {
	if err := validateInteractionTitle(title); err != nil {
		return err
	}
	if len(summary) > 2000 {
		return shared.NewDomainError("INVALID_SUMMARY", "Summary cannot exceed 2000 characters")
	}
	if len(rawContent) > 10000 {
		return shared.NewDomainError("INVALID_RAW_CONTENT", "Raw content cannot exceed 10000 characters")
	}
	if len(nextAction) > 500 {
		return shared.NewDomainError("INVALID_NEXT_ACTION", "Next action cannot exceed 500 characters")
	}

	i.Title = strings.TrimSpace(title)
	i.Summary = summary
	i.RawContent = rawContent
	i.NextAction = nextAction
	i.Touch()

	return nil
}

// SetAttachments replaces the attachment descriptor list
func (i *Interaction) SetAttachments(attachments AttachmentList) error {
	for _, att := range attachments {
		if att.URL == "" {
			return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment URL is required")
		}
		if len(att.URL) > 500 {
			return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment URL cannot exceed 500 characters")
		}
		if len(att.FileName) > 255 {
			return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment file name cannot exceed 255 characters")
		}
		if att.FileSize != nil && *att.FileSize < 0 {
			return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment file size cannot be negative")
		}
	}

	i.Attachments = attachments
	i.Touch()

	return nil
}

func validateInteractionChannel(channel InteractionChannel) error {
	switch channel {
	case InteractionChannelPhone, InteractionChannelWechat, InteractionChannelEmail,
		InteractionChannelOffline, InteractionChannelOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_CHANNEL", "Invalid interaction channel")
	}
}

func validateInteractionTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
