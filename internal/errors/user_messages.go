package errors

// User-friendly error messages
const (
	MsgSourceFetch        = "Could not download the listing page. Check the link and try again."
	MsgValidation         = "The listing is missing required information."
	MsgParse              = "The uploaded document could not be read as HTML."
	MsgServiceUnavailable = "The listing store is unavailable right now. Please try again in a few minutes."
	MsgRateLimited        = "Too many import requests. Try again later."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
