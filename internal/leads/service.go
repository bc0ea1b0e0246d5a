package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/metrics"
	"solarsmart/internal/model"
	"solarsmart/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsSource yields the settings in effect for a request.
type SettingsSource interface {
	Current(ctx context.Context) (model.Settings, error)
}

// Contact is what the last wizard step collects.
type Contact struct {
	FullName string `validate:"required,min=2,max=120"`
	Phone    string `validate:"required,min=7,max=32"`
	Email    string `validate:"required,email,max=254"`
	District string `validate:"max=120"`
}

var contactFields = map[string]string{
	"FullName": "fullName",
	"Phone":    "phone",
	"Email":    "email",
	"District": "district",
}

type Service struct {
	store    store.LeadStore
	ref      *data.Provider
	calc     *calculator.Calculator
	settings SettingsSource
	metrics  *metrics.Metrics
	log      *zap.Logger
	validate *validator.Validate

	now   func() time.Time
	newID func() string
}

func NewService(st store.LeadStore, ref *data.Provider, calc *calculator.Calculator, settings SettingsSource, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    st,
		ref:      ref,
		calc:     calc,
		settings: settings,
		metrics:  m,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create recomputes the recommendation with the current settings, so the
// stored figures never come from the client, and saves a New lead.
func (s *Service) Create(ctx context.Context, c Contact, in model.CalculationInput) (*model.Lead, error) {
	c = normalizeContact(c)
	if err := s.validateContact(c); err != nil {
		return nil, err
	}
	loc, err := s.ref.Location(in.LocationID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.calc.Compute(in, settings)
	s.metrics.ObserveCalculation(err)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lead := &model.Lead{
		ID:                 s.newID(),
		FullName:           c.FullName,
		Phone:              c.Phone,
		Email:              c.Email,
		LocationID:         loc.ID,
		City:               loc.Name,
		District:           c.District,
		BillAmount:         in.BillAmount,
		RoofArea:           in.RoofArea,
		Orientation:        in.Orientation,
		SystemSizeKW:       res.SystemSizeKW,
		PanelCount:         res.PanelCount,
		EstimatedCostUSD:   res.TotalCostUSD,
		EstimatedCostLocal: res.TotalCostLocal,
		ROIYears:           res.ROIYears,
		Status:             model.LeadStatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}
	s.metrics.LeadCreated()
	s.log.Info("lead created",
		zap.String("lead_id", lead.ID),
		zap.String("city", lead.City),
		zap.Float64("system_size_kw", lead.SystemSizeKW),
	)
	return lead, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Lead, error) {
	return s.store.GetLead(ctx, id)
}

// List returns leads newest first.
func (s *Service) List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.NewValidationError("status", "unknown lead status %q", filter.Status)
	}
	return s.store.ListLeads(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	if !status.Valid() {
		return nil, model.NewValidationError("status", "unknown lead status %q", status)
	}
	lead, err := s.store.UpdateLeadStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.metrics.LeadStatusChanged(status)
	s.log.Info("lead status changed", zap.String("lead_id", id), zap.String("status", string(status)))
	return lead, nil
}

func normalizeContact(c Contact) Contact {
	c.FullName = strings.Join(strings.Fields(c.FullName), " ")
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.District = strings.TrimSpace(c.District)
	return c
}

func (s *Service) validateContact(c Contact) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return model.NewValidationError(contactFields[fe.Field()], "failed %q check", fe.Tag())
	}
	return fmt.Errorf("validate contact: %w", err)
}
