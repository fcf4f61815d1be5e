// Package validator provides rule-based request validation with field-level
// error reporting.
//
// Validation is expressed as a list of rules applied in one pass. Each failed
// rule contributes a ValidationError naming the offending field, so callers
// can map failures back to the input without parsing error strings:
//
//	err := validator.Apply(
//		validator.Required("userId", params.UserID),
//		validator.OneOf("type", params.Type, notification.TypeValues()),
//		validator.EachOneOf("channels", params.Channels, notification.ChannelValues()),
//	)
//	if ve, ok := validator.Extract(err); ok {
//		// ve.Fields() lists the invalid fields
//	}
//
// ValidationErrors implements error, so the result of Apply travels through
// ordinary error returns and can be recovered anywhere in the call chain with
// errors.As or validator.Extract.
package validator
