// Package operationreport helps generating the errors object for a compiled definition.
package operationreport

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Report collects errors of many compilations, e.g. when a driver reports a failing definition and moves on
type Report struct {
	InternalErrors []error
	ExternalErrors []ExternalError
}

func (r Report) Error() string {
	out := ""
	for i := range r.InternalErrors {
		if i != 0 {
			out += "\n"
		}
		out += fmt.Sprintf("internal: %s", r.InternalErrors[i].Error())
	}
	if len(out) > 0 && len(r.ExternalErrors) > 0 {
		out += "\n"
	}
	for i := range r.ExternalErrors {
		if i != 0 {
			out += "\n"
		}
		out += fmt.Sprintf("external: %s, locations: %+v", r.ExternalErrors[i].Message, r.ExternalErrors[i].Locations)
	}
	return out
}

func (r *Report) HasErrors() bool {
	return len(r.InternalErrors) > 0 || len(r.ExternalErrors) > 0
}

func (r *Report) Reset() {
	r.InternalErrors = r.InternalErrors[:0]
	r.ExternalErrors = r.ExternalErrors[:0]
}

func (r *Report) AddInternalError(err error) {
	r.InternalErrors = append(r.InternalErrors, err)
}

func (r *Report) AddExternalError(externalError ExternalError) {
	r.ExternalErrors = append(r.ExternalErrors, externalError)
}

// AddError sorts err into the external errors if it is an ExternalError, into the internal errors otherwise
func (r *Report) AddError(err error) {
	var externalError ExternalError
	if errors.As(err, &externalError) {
		r.AddExternalError(externalError)
		return
	}
	r.AddInternalError(err)
}

// GQLErrors converts the report into the errors object of a GraphQL response.
// Internal errors are hidden behind a generic message.
func (r *Report) GQLErrors() gqlerror.List {
	var list gqlerror.List
	for i := range r.ExternalErrors {
		list = append(list, r.ExternalErrors[i].GQLError())
	}
	if len(r.InternalErrors) != 0 {
		list = append(list, &gqlerror.Error{Message: "internal error"})
	}
	return list
}

func UnwrappedErrorMessage(err error) string {
	for result := err; result != nil; result = errors.Unwrap(result) {
		err = result
	}
	return err.Error()
}
