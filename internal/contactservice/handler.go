package contactservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/asistecare/siteapi/internal/common"
)

func NewContactService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *ContactService {
	return &ContactService{
		m:      newContactModel(db),
		mb:     mb,
		logger: logger,
	}
}

type CreateContactRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	PostalCode string `json:"postal_code"`
}

// CreateContact persists a lead from the public contact form. The lead is
// stored regardless of what happens to the downstream email notification; a
// publish failure is logged and swallowed.
func (s *ContactService) CreateContact(ctx context.Context, req *CreateContactRequest) (*Contact, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validatePhone(v, req.Phone)
	validateEmail(v, req.Email)
	validatePostalCode(v, req.PostalCode)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	contact := &Contact{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		PostalCode: req.PostalCode,
	}

	if err := s.m.insert(ctx, contact); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, contact)

	return contact, nil
}

func (s *ContactService) publishCreated(ctx context.Context, contact *Contact) {
	data, err := json.Marshal(contact)
	if err != nil {
		s.logger.Error("could not marshal contact event", slog.String("error", err.Error()))
		return
	}

	if err := s.mb.Publish(ctx, data, common.ContactCreatedKey, common.LeadExchange); err != nil {
		s.logger.Error("could not publish contact event", slog.Int("contact_id", contact.ID), slog.String("error", err.Error()))
	}
}

func (s *ContactService) GetContact(ctx context.Context, id int) (*Contact, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

func (s *ContactService) GetAllContacts(ctx context.Context) ([]Contact, error) {
	return s.m.getAll(ctx)
}

func (s *ContactService) DeleteContact(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

// DeleteContacts removes the given leads in one transaction and reports how
// many existed.
func (s *ContactService) DeleteContacts(ctx context.Context, ids []int) (int, error) {
	v := common.NewValidator()
	v.Check(len(ids) > 0, "ids", "must be provided")
	for _, id := range ids {
		validateInt(v, id, "ids")
	}
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.deleteMany(ctx, ids)
}
