package validators

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type listingValidator struct {
	validate *validator.Validate
}

func NewListingValidator() ListingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &listingValidator{validate: v}
}

// ValidateListing reports every violated field at once as a *ValidationError.
func (v *listingValidator) ValidateListing(listing *models.Listing) error {
	fields := map[string]string{}
	if strings.TrimSpace(listing.Title) == "" {
		fields["title"] = "This field is required."
	}
	if strings.TrimSpace(listing.Address) == "" {
		fields["address"] = "This field is required."
	}

	err := v.validate.Struct(listing)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; seen {
				continue
			}
			fields[fe.Field()] = fieldMessage(fe)
		}
	} else if err != nil {
		return err
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// ValidateSourceURL accepts absolute http(s) URLs with a host.
func (v *listingValidator) ValidateSourceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apperrors.NewValidationError(map[string]string{"url": "This field is required."})
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewValidationError(map[string]string{"url": "Enter a valid http or https URL."})
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
