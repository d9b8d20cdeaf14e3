package division

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Division is a league division exported to <Label>.csv
type Division struct {
	Label         string `yaml:"label" validate:"required,excludesall=/\\"`
	CompetitionID string `yaml:"competition_id" validate:"required"`
}

// Config is the layout of a divisions YAML file
type Config struct {
	Divisions []Division `yaml:"divisions" validate:"required,min=1,unique=Label,dive"`
}

// Defaults returns the built-in divisions in export order
func Defaults() []Division {
	return []Division{
		{Label: "division_1_men_nvl", CompetitionID: "196048"},
		{Label: "div_2a_men", CompetitionID: "198880"},
		{Label: "div_3a_men", CompetitionID: "198882"},
		{Label: "div_1a_women", CompetitionID: "198885"},
		{Label: "div_1b_women", CompetitionID: "198886"},
		{Label: "div_2a_women", CompetitionID: "198887"},
		{Label: "div_2b_women", CompetitionID: "198888"},
	}
}

// Load reads divisions from a YAML file, keeping file order.
func Load(path string) ([]Division, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading divisions file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing divisions file: %w", err)
	}

	for i := range config.Divisions {
		config.Divisions[i].Label = strings.TrimSpace(config.Divisions[i].Label)
		config.Divisions[i].CompetitionID = strings.TrimSpace(config.Divisions[i].CompetitionID)
	}

	if err := Validate(config.Divisions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config.Divisions, nil
}

// Validate checks that the list is non-empty, every entry has a label and
// competition id, and labels are unique and usable as file names.
func Validate(divisions []Division) error {
	config := Config{Divisions: divisions}
	if err := validate.Struct(&config); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("validating divisions: %w", err)
		}
		return describe(fieldErrs[0])
	}

	for _, d := range divisions {
		if d.Label == "." || d.Label == ".." {
			return fmt.Errorf("division %s: label must be a plain file name", d.Label)
		}
	}

	return nil
}

// describe turns a validator failure into a message naming the YAML field
func describe(fe validator.FieldError) error {
	switch {
	case fe.Field() == "Divisions" && fe.Tag() == "unique":
		return fmt.Errorf("duplicate division label")
	case fe.Field() == "Divisions":
		return fmt.Errorf("no divisions configured")
	case fe.Field() == "Label" && fe.Tag() == "excludesall":
		return fmt.Errorf("%s: label must be a plain file name", fe.Namespace())
	case fe.Field() == "Label":
		return fmt.Errorf("%s: label is required", fe.Namespace())
	case fe.Field() == "CompetitionID":
		return fmt.Errorf("%s: competition_id is required", fe.Namespace())
	default:
		return fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag())
	}
}
