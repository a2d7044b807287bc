// Package errs provides the typed errors returned across the dispatch service.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid) with a struct
// carrying the details. Unwrap returns the sentinel, so callers classify with
// errors.Is and adapters map the sentinel to a transport status:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//		return http.StatusNotFound
//	}
package errs
