package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/lib/pq"
)

// CustomerStatus represents the sales pipeline stage of a customer
type CustomerStatus string

const (
	CustomerStatusLead          CustomerStatus = "lead"
	CustomerStatusContacted     CustomerStatus = "contacted"
	CustomerStatusNeedsAnalyzed CustomerStatus = "needs_analyzed"
	CustomerStatusQuoted        CustomerStatus = "quoted"
	CustomerStatusNegotiating   CustomerStatus = "negotiating"
	CustomerStatusWon           CustomerStatus = "won"
	CustomerStatusLost          CustomerStatus = "lost"
)

// CustomerSource represents how the customer was acquired
type CustomerSource string

const (
	CustomerSourceWebsite       CustomerSource = "website"
	CustomerSourceReferral      CustomerSource = "referral"
	CustomerSourceSocialMedia   CustomerSource = "social_media"
	CustomerSourceEvent         CustomerSource = "event"
	CustomerSourceDirectContact CustomerSource = "direct_contact"
	CustomerSourceOther         CustomerSource = "other"
)

// Customer is the aggregate root of the CRM context. The pair
// (CompanyName, ContactName) is unique among non-deleted customers;
// LastInteractionAt is derived from the interaction set and only ever
// written through ApplyInteractionTime/SetLastInteractionTime.
type Customer struct {
	shared.BaseEntity
	CompanyName       string         `gorm:"type:varchar(200);not null;uniqueIndex:uq_customers_company_contact,priority:1,where:is_deleted = false"`
	ContactName       string         `gorm:"type:varchar(200);not null;uniqueIndex:uq_customers_company_contact,priority:2,where:is_deleted = false"`
	Wechat            string         `gorm:"type:varchar(100)"`
	Phone             string         `gorm:"type:varchar(50)"`
	Email             string         `gorm:"type:varchar(255)"`
	Industry          string         `gorm:"type:varchar(100);index"`
	Source            CustomerSource `gorm:"type:varchar(30)"` // empty when unknown
	Status            CustomerStatus `gorm:"type:varchar(30);not null;default:'lead';index"`
	Tags              pq.StringArray `gorm:"type:text[]"`
	Score             int            `gorm:"not null;default:0"`
	LastInteractionAt *time.Time     `gorm:"index"`
	IsDeleted         bool           `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer in the initial lead state
func NewCustomer(companyName, contactName string) (*Customer, error) {
	if err := validateCompanyName(companyName); err != nil {
		return nil, err
	}
	if err := validateContactName(contactName); err != nil {
		return nil, err
	}

	return &Customer{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyName: strings.TrimSpace(companyName),
		ContactName: strings.TrimSpace(contactName),
		Status:      CustomerStatusLead,
	}, nil
}

// Rename changes the customer's identifying name pair
func (c *Customer) Rename(companyName, contactName string) error {
	if err := validateCompanyName(companyName); err != nil {
		return err
	}
	if err := validateContactName(contactName); err != nil {
		return err
	}

	c.CompanyName = strings.TrimSpace(companyName)
	c.ContactName = strings.TrimSpace(contactName)
	c.Touch()

	return nil
}

// SetContact sets the customer's contact channels
func (c *Customer) SetContact(wechat, phone, email string) error {
	if wechat != "" && len(wechat) > 100 {
		return shared.NewDomainError("INVALID_WECHAT", "Wechat cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Wechat = wechat
	c.Phone = phone
	c.Email = email
	c.Touch()

	return nil
}

// SetIndustry sets the customer's industry
func (c *Customer) SetIndustry(industry string) error {
	if industry != "" && len(industry) > 100 {
		return shared.NewDomainError("INVALID_INDUSTRY", "Industry cannot exceed 100 characters")
	}

	c.Industry = industry
	c.Touch()

	return nil
}

// SetSource sets the acquisition source; empty clears it
func (c *Customer) SetSource(source CustomerSource) error {
	if source != "" {
		if err := validateCustomerSource(source); err != nil {
			return err
		}
	}

	c.Source = source
	c.Touch()

	return nil
}

// SetStatus moves the customer to another pipeline stage
func (c *Customer) SetStatus(status CustomerStatus) error {
	if err := validateCustomerStatus(status); err != nil {
		return err
	}

	c.Status = status
	c.Touch()

	return nil
}

// SetTags replaces the customer's tag set
func (c *Customer) SetTags(tags []string) error {
	for _, tag := range tags {
		if tag == "" {
			return shared.NewDomainError("INVALID_TAG", "Tags cannot be empty")
		}
		if len(tag) > 50 {
			return shared.NewDomainError("INVALID_TAG", "Tags cannot exceed 50 characters")
		}
	}

	c.Tags = pq.StringArray(tags)
	c.Touch()

	return nil
}

// SetScore sets the customer's lead score
func (c *Customer) SetScore(score int) error {
	if score < 0 || score > 100 {
		return shared.NewDomainError("INVALID_SCORE", "Score must be between 0 and 100")
	}

	c.Score = score
	c.Touch()

	return nil
}

// ApplyInteractionTime merges a newly recorded interaction time into
// LastInteractionAt. Used on the create path only; update and delete must go
// through SetLastInteractionTime with a full recomputation.
func (c *Customer) ApplyInteractionTime(happenedAt time.Time) {
	t := happenedAt.UTC()
	if c.LastInteractionAt == nil || t.After(*c.LastInteractionAt) {
		c.LastInteractionAt = &t
	}
	c.Touch()
}

// SetLastInteractionTime replaces LastInteractionAt with a recomputed value,
// nil when the customer has no interactions left. The version token advances
// even when the derived value is unchanged: the interaction set did change.
func (c *Customer) SetLastInteractionTime(latest *time.Time) {
	if latest != nil {
		t := latest.UTC()
		c.LastInteractionAt = &t
	} else {
		c.LastInteractionAt = nil
	}
	c.Touch()
}

// MarkDeleted soft-deletes the customer. The row stays behind so historical
// interactions keep a valid owner.
func (c *Customer) MarkDeleted() {
	c.IsDeleted = true
	c.Touch()
}

// Validation functions

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}

func validateContactName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 200 characters")
	}
	return nil
}

func validateCustomerStatus(status CustomerStatus) error {
	switch status {
	case CustomerStatusLead, CustomerStatusContacted, CustomerStatusNeedsAnalyzed,
		CustomerStatusQuoted, CustomerStatusNegotiating, CustomerStatusWon, CustomerStatusLost:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid customer status")
	}
}

func validateCustomerSource(source CustomerSource) error {
	switch source {
	case CustomerSourceWebsite, CustomerSourceReferral, CustomerSourceSocialMedia,
		CustomerSourceEvent, CustomerSourceDirectContact, CustomerSourceOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_SOURCE", "Invalid customer source")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
