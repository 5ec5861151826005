package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
)

// ProductInput holds the product fields present in a form. Nil means the field was not sent.
type ProductInput struct {
	Title              *string  `json:"title"              validate:"omitnil,min=1,max=200"`
	Model              *string  `json:"model"              validate:"omitnil,max=100"`
	Year               *int     `json:"year"               validate:"omitnil,min=1900,max=2100"`
	UnitPrice          *float64 `json:"unitPrice"          validate:"omitnil,min=0"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"omitnil,min=0,max=100"`
	Quantity           *int     `json:"quantity"           validate:"omitnil,min=0"`
	Weight             *float64 `json:"weight"             validate:"omitnil,min=0"`
	Description        *string  `json:"description"`
	FuelType           *string  `json:"fuelType"           validate:"omitnil,oneof=Gasoline Diesel Electric Hybrid CNG LPG Other"`
	Mileage            *float64 `json:"mileage"            validate:"omitnil,min=0"`
	MileageUnit        *string  `json:"mileageUnit"        validate:"omitnil,oneof=km/l mpg l/100km"`
	Chassis            *string  `json:"chassis"            validate:"omitnil,max=100"`
	Color              *string  `json:"color"              validate:"omitnil,max=50"`
	AxleConfiguration  *string  `json:"axleConfiguration"  validate:"omitnil,max=50"`
	VehicleGrade       *string  `json:"vehicleGrade"       validate:"omitnil,max=50"`
	Tag                *string  `json:"tag"`

	CategoryID *uuid.UUID `json:"category"`
	MakeID     *uuid.UUID `json:"make"`

	// Features holds only the flags present in the form.
	Features map[string]bool `json:"-"`

	// ExistingImages lists image URLs to keep on update; nil when the field was absent.
	ExistingImages []string `json:"-"`
}

var productCreateRequired = []struct {
	name    string
	present func(*ProductInput) bool
}{
	{"title", func(in *ProductInput) bool { return in.Title != nil && *in.Title != "" }},
	{"category", func(in *ProductInput) bool { return in.CategoryID != nil }},
	{"make", func(in *ProductInput) bool { return in.MakeID != nil }},
	{"year", func(in *ProductInput) bool { return in.Year != nil }},
	{"unitPrice", func(in *ProductInput) bool { return in.UnitPrice != nil }},
	{"fuelType", func(in *ProductInput) bool { return in.FuelType != nil }},
}

// ParseProductForm reads product fields from multipart values and runs field validation.
func ParseProductForm(values map[string][]string) (ProductInput, error) {
	f := newFormReader(values)
	in := ProductInput{
		Title:              f.str("title"),
		Model:              f.str("model"),
		Year:               f.int("year"),
		UnitPrice:          f.float("unitPrice"),
		DiscountPercentage: f.float("discountPercentage"),
		Quantity:           f.int("quantity"),
		Weight:             f.float("weight"),
		Description:        f.str("description"),
		FuelType:           f.str("fuelType"),
		Mileage:            f.float("mileage"),
		MileageUnit:        f.str("mileageUnit"),
		Chassis:            f.str("chassis"),
		Color:              f.str("color"),
		AxleConfiguration:  f.str("axleConfiguration"),
		VehicleGrade:       f.str("vehicleGrade"),
		Tag:                f.str("tag"),
		CategoryID:         f.id("category"),
		MakeID:             f.id("make"),
		ExistingImages:     f.list("existingImages"),
	}

	var zero models.Features
	for _, flag := range zero.FeatureFlags() {
		for _, key := range []string{flag.Name, "features." + flag.Name, "features[" + flag.Name + "]"} {
			if !f.has(key) {
				continue
			}
			if v := f.bool(key); v != nil {
				if in.Features == nil {
					in.Features = make(map[string]bool)
				}
				in.Features[flag.Name] = *v
			}
			break
		}
	}

	if in.Tag != nil && *in.Tag != "" && *in.Tag != models.TagTrucks {
		f.fail("tag", "must be "+models.TagTrucks+" or empty")
	}

	if err := f.err(); err != nil {
		return in, err
	}
	return in, Validate(in)
}

// RequireForCreate reports every mandatory field missing from a create form.
func (in *ProductInput) RequireForCreate() error {
	var errs ValidationErrors
	for _, r := range productCreateRequired {
		if !r.present(in) {
			errs = append(errs, FieldError{Field: r.name, Message: "is required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyTo copies every present field onto p. Images and thumbnail are handled by the caller.
func (in *ProductInput) ApplyTo(p *models.Product) {
	setString(&p.Title, in.Title)
	setString(&p.Model, in.Model)
	setInt(&p.Year, in.Year)
	setFloat(&p.UnitPrice, in.UnitPrice)
	setFloat(&p.DiscountPercentage, in.DiscountPercentage)
	setInt(&p.Quantity, in.Quantity)
	setFloat(&p.Weight, in.Weight)
	setString(&p.Description, in.Description)
	setString(&p.FuelType, in.FuelType)
	setFloat(&p.Mileage, in.Mileage)
	setString(&p.MileageUnit, in.MileageUnit)
	setString(&p.Chassis, in.Chassis)
	setString(&p.Color, in.Color)
	setString(&p.AxleConfiguration, in.AxleConfiguration)
	setString(&p.VehicleGrade, in.VehicleGrade)
	setString(&p.Tag, in.Tag)
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.MakeID != nil {
		p.MakeID = *in.MakeID
	}
	for _, flag := range p.Features.FeatureFlags() {
		if v, ok := in.Features[flag.Name]; ok {
			*flag.Field = v
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
