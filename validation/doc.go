// Package validation provides input validation for picoview resources.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both return an
// *errors.AppError with code INVALID_INPUT and per-field details.
//
// # Struct Tag Validation
//
//	type PodSpec struct {
//	    Name  string   `json:"name" validate:"required,podname"`
//	    Ports []string `json:"ports" validate:"dive,portmap"`
//	}
//	err := validation.Validate(spec)
//
// # Programmatic Validation
//
//	v := validation.New().Name("node", name)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
