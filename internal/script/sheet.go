// ABOUTME: Answer sheets script one or more case attempts for non-interactive runs
// ABOUTME: Sheets are YAML, TOML or JSON and decoded strictly like catalogs
package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/harper/usecase-clinic/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmptySheet is returned for a sheet with no attempts
var ErrEmptySheet = errors.New("answer sheet has no attempts")

// Prescription holds the chosen option index per category; nil means unanswered
type Prescription struct {
	Reformulation *int `json:"reformulation" yaml:"reformulation" toml:"reformulation"`
	Vigilance     *int `json:"vigilance" yaml:"vigilance" toml:"vigilance"`
	NextSteps     *int `json:"next_steps" yaml:"next_steps" toml:"next_steps"`
}

// For returns the index for a category
func (p Prescription) For(c models.PrescriptionCategory) *int {
	switch c {
	case models.CategoryReformulation:
		return p.Reformulation
	case models.CategoryVigilance:
		return p.Vigilance
	case models.CategoryNextSteps:
		return p.NextSteps
	}
	return nil
}

// Attempt is one scripted playthrough of a case
type Attempt struct {
	Case         string               `json:"case" yaml:"case" toml:"case"`
	Ask          []string             `json:"ask" yaml:"ask" toml:"ask"`
	Diagnosis    models.DiagnosisType `json:"diagnosis" yaml:"diagnosis" toml:"diagnosis"`
	Risk         models.RiskLevel     `json:"risk" yaml:"risk" toml:"risk"`
	Stakeholder  models.Stakeholder   `json:"stakeholder" yaml:"stakeholder" toml:"stakeholder"`
	Prescription Prescription         `json:"prescription" yaml:"prescription" toml:"prescription"`
}

// Sheet is an ordered list of attempts
type Sheet struct {
	Attempts []Attempt `json:"attempts" yaml:"attempts" toml:"attempts"`
}

// Decode parses an answer sheet, rejecting unknown fields
func Decode(data []byte, format catalog.Format) (*Sheet, error) {
	var sheet Sheet

	switch format {
	case catalog.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sheet); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML answer sheet: %w", err)
		}
	case catalog.FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&sheet); err != nil {
			return nil, fmt.Errorf("failed to parse TOML answer sheet: %w", err)
		}
	case catalog.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sheet); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse JSON answer sheet: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnsupportedFormat, format)
	}

	if len(sheet.Attempts) == 0 {
		return nil, ErrEmptySheet
	}
	return &sheet, nil
}

// Load reads an answer sheet, choosing the decoder from the extension
func Load(path string) (*Sheet, error) {
	format, err := catalog.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answer sheet: %w", err)
	}
	sheet, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}
