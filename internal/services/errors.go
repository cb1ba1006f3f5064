package services

import (
	"errors"
	"sort"
	"strings"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPermission
	KindNotFound
	KindUnavailable
)

// Error is a domain failure with a stable message. Key is the response body
// key the message is reported under; Field marks field-level validation errors.
type Error struct {
	Kind    Kind
	Key     string
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNotAssociated    = &Error{Kind: KindValidation, Key: "error", Message: "User is not associated with any company."}
	ErrNotEnterprise    = &Error{Kind: KindValidation, Key: "error", Message: "User is not linked to an enterprise company."}
	ErrNotCompanyMember = &Error{Kind: KindPermission, Key: "error", Message: "User is not a member of this company."}
	ErrForbidden        = &Error{Kind: KindPermission, Key: "detail", Message: "You do not have permission to perform this action."}
	ErrUserNotFound     = &Error{Kind: KindNotFound, Key: "detail", Message: "User not found."}

	ErrCompanyNotFound = &Error{Kind: KindNotFound, Key: "detail", Message: "Company not found."}
	ErrStartupNotFound = &Error{Kind: KindNotFound, Key: "detail", Message: "Startup not found."}
	ErrDuplicateName   = &Error{Kind: KindValidation, Field: "company_name", Message: "A company with this name already exists."}
	ErrSameTypeLink    = &Error{Kind: KindValidation, Field: "non_field_errors", Message: "This user is already linked to another company with the same type."}

	ErrAlreadyFollowing = &Error{Kind: KindValidation, Key: "detail", Message: "You are already following this startup."}
	ErrNotFollowing     = &Error{Kind: KindValidation, Key: "detail", Message: "You are not following this startup."}

	ErrShareNotPositive      = &Error{Kind: KindValidation, Field: "investment_share", Message: "Investment share must be greater than 0."}
	ErrShareTooLarge         = &Error{Kind: KindValidation, Field: "investment_share", Message: "Investment share cannot exceed 100."}
	ErrSharePrecision        = &Error{Kind: KindValidation, Field: "investment_share", Message: "Ensure that there are no more than 2 decimal places."}
	ErrOverAllocated         = &Error{Kind: KindValidation, Field: "investment_share", Message: "Total investment share for this project cannot exceed 100.00."}
	ErrDuplicateSubscription = &Error{Kind: KindValidation, Field: "non_field_errors", Message: "You already have a subscription for this project."}
	ErrProjectDoesNotExist   = &Error{Kind: KindValidation, Field: "project", Message: "Project does not exist."}
	ErrSubscriptionNotFound  = &Error{Kind: KindNotFound, Key: "detail", Message: "Not found."}

	ErrProjectNotFound      = &Error{Kind: KindNotFound, Key: "detail", Message: "Project not found."}
	ErrDuplicateProjectName = &Error{Kind: KindValidation, Field: "name", Message: "A project with this name already exists."}

	ErrNotificationNotFound    = &Error{Kind: KindNotFound, Key: "detail", Message: "Notification not found."}
	ErrPreferenceNotFound      = &Error{Kind: KindNotFound, Key: "detail", Message: "Notification preference not found."}
	ErrUnknownNotificationType = &Error{Kind: KindValidation, Field: "type", Message: "Invalid notification type."}

	ErrSameCompany       = &Error{Kind: KindValidation, Field: "company_id", Message: "A chat room needs two different companies."}
	ErrSearchUnavailable = &Error{Kind: KindUnavailable, Key: "error", Message: "Search is not configured."}

	ErrStorageUnavailable = &Error{Kind: KindUnavailable, Key: "error", Message: "File storage is not configured."}
	ErrUnsupportedFile    = &Error{Kind: KindValidation, Field: "file", Message: "Upload a PNG, JPEG or WebP image."}
)

// FieldErrors collects several field-level validation failures at once.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// OrNil lets validators build a FieldErrors value unconditionally.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// KindOf reports the kind of a domain error, or 0 for anything else.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return KindValidation
	}
	return 0
}
