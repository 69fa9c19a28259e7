// Package seed loads the reference data a dose ordering instance starts with.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the YAML document describing the initial schedule and price lists
type Catalog struct {
	Appointments []*entities.Appointment   `yaml:"appointments"`
	Vendors      []*entities.Vendor        `yaml:"vendors"`
	Insurances   []*entities.InsurancePlan `yaml:"insurances"`
	DoseCredits  []*entities.DoseCredit    `yaml:"dose_credits"`
	Regulatory   Regulatory                `yaml:"regulatory"`
}

// Regulatory holds the initial records of the compliance registers. Derived
// statuses must agree with the readings they grade.
type Regulatory struct {
	ActionItems   []*entities.ActionItem       `yaml:"action_items"`
	DailySurveys  []*entities.DailyAreaSurvey  `yaml:"daily_surveys"`
	WeeklySurveys []*entities.WeeklyAreaSurvey `yaml:"weekly_surveys"`
	Dosimeters    []*entities.Dosimeter        `yaml:"dosimeters"`
	InstrumentQC  []*entities.InstrumentQC     `yaml:"instrument_qc"`
	PatientDoses  []*entities.PatientDose      `yaml:"patient_doses"`
	SealedSources []*entities.SealedSource     `yaml:"sealed_sources"`
	TracerMoves   []*entities.TracerMovement   `yaml:"tracer_movements"`
	WasteBins     []*entities.WasteBin         `yaml:"waste_bins"`
}

// Repositories are the stores a catalog is applied to
type Repositories struct {
	Appointments repositories.AppointmentRepository
	Vendors      repositories.VendorRepository
	Insurances   repositories.InsuranceRepository
	DoseCredits  repositories.DoseCreditRepository
	Compliance   repositories.ComplianceRepositories
}

// Default returns the embedded demo catalog
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from disk; an empty path yields the default catalog
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a catalog
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks statuses, prices and ids
func (c *Catalog) Validate() error {
	for i, a := range c.Appointments {
		if a == nil {
			return fmt.Errorf("appointment %d: empty entry", i)
		}
		if a.ID == "" {
			return fmt.Errorf("appointment %d: id is required", i)
		}
		if !a.Status.IsValid() {
			return fmt.Errorf("appointment %s: unknown status %q", a.ID, a.Status)
		}
	}
	for i, v := range c.Vendors {
		if v == nil {
			return fmt.Errorf("vendor %d: empty entry", i)
		}
		if v.ID == "" {
			return fmt.Errorf("vendor %d: id is required", i)
		}
		for substance, price := range v.Pricing {
			if price < 0 {
				return fmt.Errorf("vendor %s: negative price for %s", v.ID, substance)
			}
		}
	}
	for i, p := range c.Insurances {
		if p == nil {
			return fmt.Errorf("insurance %d: empty entry", i)
		}
		if p.ID == "" {
			return fmt.Errorf("insurance %d: id is required", i)
		}
	}
	for i, d := range c.DoseCredits {
		if d == nil {
			return fmt.Errorf("dose credit %d: empty entry", i)
		}
		if d.ID == "" {
			return fmt.Errorf("dose credit %d: id is required", i)
		}
	}
	return c.Regulatory.validate()
}

// Apply inserts every catalog record, keeping document order
func (c *Catalog) Apply(ctx context.Context, repos Repositories) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, a := range c.Appointments {
		if err := repos.Appointments.Create(ctx, a); err != nil {
			return fmt.Errorf("seed appointment %s: %w", a.ID, err)
		}
	}
	for _, v := range c.Vendors {
		if err := repos.Vendors.Create(ctx, v); err != nil {
			return fmt.Errorf("seed vendor %s: %w", v.ID, err)
		}
	}
	for _, p := range c.Insurances {
		if err := repos.Insurances.Create(ctx, p); err != nil {
			return fmt.Errorf("seed insurance %s: %w", p.ID, err)
		}
	}
	for _, d := range c.DoseCredits {
		if err := repos.DoseCredits.Create(ctx, d); err != nil {
			return fmt.Errorf("seed dose credit %s: %w", d.ID, err)
		}
	}
	return c.Regulatory.apply(ctx, repos.Compliance)
}
