package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	CompanyName string   `json:"company_name" binding:"required,min=1,max=200"`
	ContactName string   `json:"contact_name" binding:"required,min=1,max=200"`
	Wechat      string   `json:"wechat" binding:"max=100"`
	Phone       string   `json:"phone" binding:"max=50"`
	Email       string   `json:"email" binding:"omitempty,email,max=255"`
	Industry    string   `json:"industry" binding:"max=100"`
	Source      string   `json:"source" binding:"omitempty,oneof=website referral social_media event direct_contact other"`
	Status      string   `json:"status" binding:"omitempty,oneof=lead contacted needs_analyzed quoted negotiating won lost"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Score       *int     `json:"score" binding:"omitempty,min=0,max=100"`
}

// UpdateCustomerRequest represents a full customer update. OriginalUpdatedAt
// is the version token captured from a previous read; when nil the update
// proceeds without a concurrency check.
type UpdateCustomerRequest struct {
	CompanyName       string     `json:"company_name" binding:"required,min=1,max=200"`
	ContactName       string     `json:"contact_name" binding:"required,min=1,max=200"`
	Wechat            string     `json:"wechat" binding:"max=100"`
	Phone             string     `json:"phone" binding:"max=50"`
	Email             string     `json:"email" binding:"omitempty,email,max=255"`
	Industry          string     `json:"industry" binding:"max=100"`
	Source            string     `json:"source" binding:"omitempty,oneof=website referral social_media event direct_contact other"`
	Status            string     `json:"status" binding:"omitempty,oneof=lead contacted needs_analyzed quoted negotiating won lost"`
	Tags              []string   `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Score             *int       `json:"score" binding:"omitempty,min=0,max=100"`
	OriginalUpdatedAt *time.Time `json:"original_updated_at"`
}

// SearchCustomersRequest represents a paged customer search
type SearchCustomersRequest struct {
	Keyword  string `form:"keyword"`
	Status   string `form:"status" binding:"omitempty,oneof=lead contacted needs_analyzed quoted negotiating won lost"`
	Industry string `form:"industry"`
	Source   string `form:"source" binding:"omitempty,oneof=website referral social_media event direct_contact other"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                uuid.UUID  `json:"id"`
	CompanyName       string     `json:"company_name"`
	ContactName       string     `json:"contact_name"`
	Wechat            string     `json:"wechat,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Email             string     `json:"email,omitempty"`
	Industry          string     `json:"industry,omitempty"`
	Source            string     `json:"source,omitempty"`
	Status            string     `json:"status"`
	Tags              []string   `json:"tags,omitempty"`
	Score             int        `json:"score"`
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its API representation
func ToCustomerResponse(customer *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                customer.ID,
		CompanyName:       customer.CompanyName,
		ContactName:       customer.ContactName,
		Wechat:            customer.Wechat,
		Phone:             customer.Phone,
		Email:             customer.Email,
		Industry:          customer.Industry,
		Source:            string(customer.Source),
		Status:            string(customer.Status),
		Tags:              customer.Tags,
		Score:             customer.Score,
		LastInteractionAt: customer.LastInteractionAt,
		CreatedAt:         customer.CreatedAt,
		UpdatedAt:         customer.UpdatedAt,
	}
}

// =============================================================================
// Interaction DTOs
// =============================================================================

// AttachmentDTO describes one attachment in requests and responses
type AttachmentDTO struct {
	URL      string `json:"url" binding:"required,max=500"`
	FileName string `json:"file_name,omitempty" binding:"max=255"`
	FileSize *int64 `json:"file_size,omitempty" binding:"omitempty,min=0"`
}

// CreateInteractionRequest represents a request to record an interaction
type CreateInteractionRequest struct {
	HappenedAt  time.Time       `json:"happened_at" binding:"required"`
	Channel     string          `json:"channel" binding:"required,oneof=phone wechat email offline other"`
	Stage       string          `json:"stage" binding:"omitempty,oneof=lead contacted needs_analyzed quoted negotiating won lost"`
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Summary     string          `json:"summary" binding:"max=2000"`
	RawContent  string          `json:"raw_content" binding:"max=10000"`
	NextAction  string          `json:"next_action" binding:"max=500"`
	Attachments []AttachmentDTO `json:"attachments" binding:"omitempty,dive"`
}

// UpdateInteractionRequest represents a full interaction update
type UpdateInteractionRequest struct {
	HappenedAt        time.Time       `json:"happened_at" binding:"required"`
	Channel           string          `json:"channel" binding:"required,oneof=phone wechat email offline other"`
	Stage             string          `json:"stage" binding:"omitempty,oneof=lead contacted needs_analyzed quoted negotiating won lost"`
	Title             string          `json:"title" binding:"required,min=1,max=200"`
	Summary           string          `json:"summary" binding:"max=2000"`
	RawContent        string          `json:"raw_content" binding:"max=10000"`
	NextAction        string          `json:"next_action" binding:"max=500"`
	Attachments       []AttachmentDTO `json:"attachments" binding:"omitempty,dive"`
	OriginalUpdatedAt *time.Time      `json:"original_updated_at"`
}

// InteractionResponse represents an interaction in API responses
type InteractionResponse struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	HappenedAt  time.Time       `json:"happened_at"`
	Channel     string          `json:"channel"`
	Stage       string          `json:"stage,omitempty"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary,omitempty"`
	RawContent  string          `json:"raw_content,omitempty"`
	NextAction  string          `json:"next_action,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToInteractionResponse converts a domain interaction to its API representation
func ToInteractionResponse(interaction *crm.Interaction) InteractionResponse {
	var attachments []AttachmentDTO
	for _, att := range interaction.Attachments {
		attachments = append(attachments, AttachmentDTO{
			URL:      att.URL,
			FileName: att.FileName,
			FileSize: att.FileSize,
		})
	}

	return InteractionResponse{
		ID:          interaction.ID,
		CustomerID:  interaction.CustomerID,
		HappenedAt:  interaction.HappenedAt,
		Channel:     string(interaction.Channel),
		Stage:       string(interaction.Stage),
		Title:       interaction.Title,
		Summary:     interaction.Summary,
		RawContent:  interaction.RawContent,
		NextAction:  interaction.NextAction,
		Attachments: attachments,
		CreatedAt:   interaction.CreatedAt,
		UpdatedAt:   interaction.UpdatedAt,
	}
}

func toAttachmentList(attachments []AttachmentDTO) crm.AttachmentList {
	if len(attachments) == 0 {
		return nil
	}
	list := make(crm.AttachmentList, 0, len(attachments))
	for _, att := range attachments {
		list = append(list, crm.Attachment{
			URL:      att.URL,
			FileName: att.FileName,
			FileSize: att.FileSize,
		})
	}
	return list
}
