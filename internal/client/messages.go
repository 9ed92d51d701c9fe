package client

import "userdir/internal/api"

// errorMessages maps stable error codes to the text shown to people.
var errorMessages = map[string]string{
	api.CodeUserNotFound:         "The requested user was not found.",
	api.CodeUserAlreadyExists:    "A user with this email address already exists.",
	api.CodeEmailAlreadyExists:   "This email address is already in use.",
	api.CodeValidationError:      "The submitted data is invalid.",
	api.CodeQueryValidationError: "The search conditions are invalid.",
	api.CodeParamValidationError: "The request parameters are invalid.",
	api.CodeFetchUsersError:      "Failed to load users. Please try again later.",
	api.CodeFetchUserError:       "Failed to load the user. Please try again later.",
	api.CodeCreateUserError:      "Failed to create the user. Please try again later.",
	api.CodeUpdateUserError:      "Failed to update the user. Please try again later.",
	api.CodeDeleteUserError:      "Failed to delete the user. Please try again later.",
	api.CodeRouteNotFound:        "The requested resource does not exist.",
	api.CodeUnknownError:         "Could not reach the server. Check your connection.",
}

// ErrorMessage returns the display text for a code, falling back to the
// supplied raw message and then to a generic string.
func ErrorMessage(code, fallback string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return "An unexpected error occurred."
}

// UserMessage returns the display text for this error.
func (e *APIError) UserMessage() string {
	return ErrorMessage(e.Code, e.Message)
}
