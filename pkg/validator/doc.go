// Package validator provides small declarative input rules.
//
//	err := validator.Apply(
//		validator.Required("email", in.Email),
//		validator.ValidEmail("email", in.Email),
//	)
//	if ve, ok := validator.Extract(err); ok {
//		// ve.Map() -> {"email": ["validation.email"]}
//	}
package validator
