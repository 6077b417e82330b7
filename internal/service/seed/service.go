// Package seed loads reference states and demo volunteers/events.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

var (
	//go:embed data/dataset.yaml
	defaultDataset []byte

	//go:embed data/schema.json
	datasetSchema []byte
)

type Dataset struct {
	States     []StateSeed     `yaml:"states"`
	Volunteers []VolunteerSeed `yaml:"volunteers"`
	Events     []EventSeed     `yaml:"events"`
}

type StateSeed struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type VolunteerSeed struct {
	UserID       string   `yaml:"userId"`
	Email        string   `yaml:"email"`
	Password     string   `yaml:"password"`
	FullName     string   `yaml:"fullName"`
	Address1     string   `yaml:"address1"`
	Address2     string   `yaml:"address2"`
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	Zip          string   `yaml:"zip"`
	Skills       []string `yaml:"skills"`
	Availability []string `yaml:"availability"`
	Preferences  string   `yaml:"preferences"`
}

type EventSeed struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Location       string   `yaml:"location"`
	RequiredSkills []string `yaml:"requiredSkills"`
	Urgency        string   `yaml:"urgency"`
	Date           string   `yaml:"date"`
}

type Report struct {
	States     int
	Volunteers int
	Events     int
}

// DefaultDataset returns the embedded demo dataset.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(defaultDataset)
}

// ParseDataset decodes YAML and checks it against the dataset JSON Schema.
func ParseDataset(data []byte) (*Dataset, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(datasetSchema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("dataset validation failed: %s", strings.Join(errs, "; "))
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &ds, nil
}

type Service interface {
	Seed(ctx context.Context, ds *Dataset) (Report, error)
}

type service struct {
	db            *sqlx.DB
	stateRepo     repository.StateRepository
	credRepo      repository.CredentialRepository
	volunteerRepo repository.VolunteerRepository
	eventRepo     repository.EventRepository
	log           *zap.Logger
	hashCost      int
}

func NewService(db *sqlx.DB, repos *repository.Repositories, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		db:            db,
		stateRepo:     repos.State,
		credRepo:      repos.Credential,
		volunteerRepo: repos.Volunteer,
		eventRepo:     repos.Event,
		log:           log,
		hashCost:      bcrypt.DefaultCost,
	}
}

// Seed upserts everything in ds. Each volunteer's credential and profile are
// written in one transaction; rows are keyed so re-running never duplicates.
func (s *service) Seed(ctx context.Context, ds *Dataset) (Report, error) {
	var report Report

	for _, st := range ds.States {
		if err := s.stateRepo.Upsert(ctx, domain.State{Code: st.Code, Name: st.Name}); err != nil {
			return report, fmt.Errorf("seed state %s: %w", st.Code, err)
		}
		report.States++
	}

	for _, v := range ds.Volunteers {
		if err := s.seedVolunteer(ctx, v); err != nil {
			return report, fmt.Errorf("seed volunteer %s: %w", v.Email, err)
		}
		report.Volunteers++
	}

	for _, e := range ds.Events {
		event, err := e.toEvent()
		if err != nil {
			return report, fmt.Errorf("seed event %s: %w", e.Name, err)
		}
		if err := s.eventRepo.Upsert(ctx, event); err != nil {
			return report, fmt.Errorf("seed event %s: %w", e.Name, err)
		}
		report.Events++
	}

	s.log.Info("seed complete",
		zap.Int("states", report.States),
		zap.Int("volunteers", report.Volunteers),
		zap.Int("events", report.Events))
	return report, nil
}

func (s *service) seedVolunteer(ctx context.Context, v VolunteerSeed) error {
	userID, err := uuid.Parse(v.UserID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(v.Password), s.hashCost)
	if err != nil {
		return err
	}

	cred := &domain.Credential{
		ID:           userID,
		Email:        strings.ToLower(v.Email),
		PasswordHash: string(hash),
		Role:         string(domain.RoleVolunteer),
	}

	return repository.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.credRepo.WithTx(tx).Upsert(ctx, cred); err != nil {
			return err
		}

		profile := &domain.VolunteerProfile{
			ID:           uuid.New(),
			UserID:       cred.ID,
			FullName:     v.FullName,
			Address1:     v.Address1,
			Address2:     optional(v.Address2),
			City:         v.City,
			StateCode:    v.State,
			ZipCode:      v.Zip,
			Skills:       pq.StringArray(v.Skills),
			Availability: pq.StringArray(nonNil(v.Availability)),
			Preferences:  optional(v.Preferences),
		}
		return s.volunteerRepo.WithTx(tx).Upsert(ctx, profile)
	})
}

func (e EventSeed) toEvent() (*domain.Event, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(e.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		ID:             id,
		Name:           e.Name,
		Description:    e.Description,
		Location:       e.Location,
		RequiredSkills: pq.StringArray(e.RequiredSkills),
		Urgency:        domain.Urgency(e.Urgency),
		Date:           date,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
