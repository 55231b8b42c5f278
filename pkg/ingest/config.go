package ingest

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/normalize"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
)

// Dataset selects what a run downloads.
type Dataset string

const (
	DatasetOverview  Dataset = "overview"
	DatasetDetailed  Dataset = "detailed"
	DatasetTechnical Dataset = "technical"
)

// Category returns the output directory category of the dataset.
func (d Dataset) Category() string {
	if d == DatasetTechnical {
		return "technical"
	}

	return "fundamental"
}

// OutputMode selects one file per symbol or one file per run.
type OutputMode string

const (
	OutputIndividual OutputMode = "individual"
	OutputCombined   OutputMode = "combined"
)

// DefaultLookbackDays is the technical range used when no start date is given.
const DefaultLookbackDays = 5

// RunConfig describes one ingestion run.
type RunConfig struct {
	Index     string     `yaml:"index" json:"index" jsonschema:"title=Index,description=Index name as published by the index source (e.g. NIFTY 50),required" validate:"required"`
	Dataset   Dataset    `yaml:"dataset" json:"dataset" jsonschema:"title=Dataset,description=What to download,required,enum=overview,enum=detailed,enum=technical" validate:"required,oneof=overview detailed technical"`
	Frequency string     `yaml:"frequency,omitempty" json:"frequency,omitempty" jsonschema:"title=Frequency,description=Statement frequency for the detailed dataset,enum=annual,enum=quarterly"`
	Years     int        `yaml:"years,omitempty" json:"years,omitempty" jsonschema:"title=Years,description=Lookback window in whole years for the detailed dataset,minimum=1"`
	StartDate string     `yaml:"startDate,omitempty" json:"startDate,omitempty" jsonschema:"title=Start Date,description=First day of the technical range (defaults to five days ago)"`
	EndDate   string     `yaml:"endDate,omitempty" json:"endDate,omitempty" jsonschema:"title=End Date,description=Last day of the technical range (defaults to today)"`
	Interval  string     `yaml:"interval,omitempty" json:"interval,omitempty" jsonschema:"title=Interval,description=Bar interval for the technical dataset,enum=1m,enum=2m,enum=5m,enum=15m,enum=30m,enum=1h,enum=1d,enum=5d,enum=1wk,enum=1mo,enum=3mo"`
	Mode      OutputMode `yaml:"mode" json:"mode" jsonschema:"title=Output Mode,description=One file per symbol or one combined file,required,enum=individual,enum=combined" validate:"required,oneof=individual combined"`
}

// RunParams is a RunConfig after normalization and validation.
type RunParams struct {
	Index     string
	Dataset   Dataset
	Frequency provider.Frequency
	Years     int
	Start     time.Time
	End       time.Time
	Interval  provider.Interval
	Mode      OutputMode
}

// Normalize returns a copy with canonical spellings and defaults filled in.
func (c RunConfig) Normalize() RunConfig {
	out := c
	out.Index = strings.ToUpper(strings.TrimSpace(c.Index))
	out.Dataset = Dataset(strings.ToLower(strings.TrimSpace(string(c.Dataset))))
	out.Mode = OutputMode(strings.ToLower(strings.TrimSpace(string(c.Mode))))
	out.StartDate = strings.TrimSpace(c.StartDate)
	out.EndDate = strings.TrimSpace(c.EndDate)

	switch out.Dataset {
	case DatasetDetailed:
		out.Frequency = strings.TrimSpace(c.Frequency)
		if out.Frequency == "" {
			out.Frequency = string(provider.FrequencyAnnual)
		} else if freq, err := provider.ParseFrequency(out.Frequency); err == nil {
			out.Frequency = string(freq)
		}
	case DatasetTechnical:
		out.Interval = strings.TrimSpace(c.Interval)
		if out.Interval == "" {
			out.Interval = string(provider.IntervalOneDay)
		} else if interval, err := provider.ParseInterval(out.Interval); err == nil {
			out.Interval = string(interval)
		}
	case DatasetOverview:
	}

	return out
}

// Validate normalizes the config, checks it and resolves dates against now.
// Every failure is an input error, so a run that fails here has not touched the network or disk.
func (c RunConfig) Validate(now time.Time) (RunParams, error) {
	cfg := c.Normalize()

	if err := validator.New().Struct(cfg); err != nil {
		return RunParams{}, validationError(err)
	}

	params := RunParams{
		Index:     cfg.Index,
		Dataset:   cfg.Dataset,
		Frequency: "",
		Years:     0,
		Start:     time.Time{},
		End:       time.Time{},
		Interval:  "",
		Mode:      cfg.Mode,
	}

	switch cfg.Dataset {
	case DatasetDetailed:
		freq, err := provider.ParseFrequency(cfg.Frequency)
		if err != nil {
			return RunParams{}, errors.Wrapf(errors.ErrCodeInvalidFrequency, err, "invalid frequency %q", cfg.Frequency)
		}

		if cfg.Years < 1 {
			return RunParams{}, errors.Newf(errors.ErrCodeInvalidYears, "years must be a positive integer, got %d", cfg.Years)
		}

		params.Frequency = freq
		params.Years = cfg.Years
	case DatasetTechnical:
		interval, err := provider.ParseInterval(cfg.Interval)
		if err != nil {
			return RunParams{}, errors.Wrapf(errors.ErrCodeInvalidInterval, err, "invalid interval %q", cfg.Interval)
		}

		start, end, err := resolveRange(cfg.StartDate, cfg.EndDate, now)
		if err != nil {
			return RunParams{}, err
		}

		params.Interval = interval
		params.Start = start
		params.End = end
	case DatasetOverview:
	}

	return params, nil
}

// validationError maps the first failing field to its error code.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run configuration", err)
	}

	field := fieldErrs[0]

	switch field.Field() {
	case "Index":
		return errors.Wrap(errors.ErrCodeMissingParameter, "index name is required", err)
	case "Dataset":
		return errors.Wrapf(errors.ErrCodeInvalidDataset, err,
			"dataset must be one of overview, detailed or technical, got %q", field.Value())
	case "Mode":
		return errors.Wrapf(errors.ErrCodeInvalidOutputMode, err,
			"output mode must be either individual or combined, got %q", field.Value())
	default:
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run configuration", err)
	}
}

func resolveRange(startInput, endInput string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	end := today
	if endInput != "" {
		parsed, err := normalize.ParseDate(endInput, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		end = parsed
	}

	start := today.AddDate(0, 0, -DefaultLookbackDays)
	if startInput != "" {
		parsed, err := normalize.ParseDate(startInput, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		start = parsed
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidDateRange,
			"start date %s is after end date %s", normalize.FormatDate(start), normalize.FormatDate(end))
	}

	return start, end, nil
}
