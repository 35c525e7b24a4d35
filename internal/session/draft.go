package session

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/m3rciful/sneakerbot/core/telegram/format"
	"github.com/m3rciful/sneakerbot/internal/catalog"
)

// Step is the field a creation draft expects next.
type Step int

const (
	StepName Step = iota + 1
	StepBrand
	StepSize
	StepPrice
	StepImage
)

var stepNames = map[Step]string{
	StepName:  "name",
	StepBrand: "brand",
	StepSize:  "size",
	StepPrice: "price",
	StepImage: "image",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// NoImageToken is the answer to the image prompt that means "no picture".
const NoImageToken = "ні"

// Draft accumulates a new shoe one field per message.
type Draft struct {
	Step  Step
	Name  string
	Brand string
	Size  float64
	Price int64
	Image *string
}

// NewDraft starts a draft at the name step.
func NewDraft() *Draft {
	return &Draft{Step: StepName}
}

// Accept consumes text for the current step. On success the draft advances
// and done reports whether every field is collected. A *ValidationError
// leaves the draft unchanged.
func (d *Draft) Accept(text string) (done bool, err error) {
	switch d.Step {
	case StepName:
		if strings.TrimSpace(text) == "" {
			return false, &ValidationError{Field: "name", Input: text, Reason: ReasonEmpty}
		}
		d.Name = text
		d.Step = StepBrand
	case StepBrand:
		if strings.TrimSpace(text) == "" {
			return false, &ValidationError{Field: "brand", Input: text, Reason: ReasonEmpty}
		}
		d.Brand = text
		d.Step = StepSize
	case StepSize:
		size, err := parseSize(text)
		if err != nil {
			return false, err
		}
		d.Size = size
		d.Step = StepPrice
	case StepPrice:
		price, err := parsePrice(text)
		if err != nil {
			return false, err
		}
		d.Price = price
		d.Step = StepImage
	case StepImage:
		d.Image = nil
		if cases.Lower(language.Ukrainian).String(text) != NoImageToken {
			d.Image = format.Optional(text)
		}
		return true, nil
	default:
		return false, &ValidationError{Field: "step", Input: d.Step.String(), Reason: "unknown step"}
	}
	return false, nil
}

// Shoe converts a completed draft into an insertable record.
func (d *Draft) Shoe() catalog.NewShoe {
	return catalog.NewShoe{
		Name:  d.Name,
		Brand: d.Brand,
		Size:  d.Size,
		Price: d.Price,
		Image: d.Image,
	}
}

// parseSize accepts ',' or '.' as the decimal separator.
func parseSize(text string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "size", Input: text, Reason: ReasonNotNumber}
	}
	return checkSize(v, text)
}

// checkSize rejects sizes that are not a finite positive number once
// rounded to the precision of the size column.
func checkSize(v float64, input string) (float64, error) {
	n := catalog.NormalizeSize(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ValidationError{Field: "size", Input: input, Reason: ReasonNotNumber}
	}
	if n <= 0 {
		return 0, &ValidationError{Field: "size", Input: input, Reason: ReasonNotPositive}
	}
	return v, nil
}

func parsePrice(text string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "price", Input: text, Reason: ReasonNotInteger}
	}
	if v <= 0 {
		return 0, &ValidationError{Field: "price", Input: text, Reason: ReasonNotPositive}
	}
	return v, nil
}
