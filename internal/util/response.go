package util

import (
	"fmt"
	"reflect"
	"strings"
)

// Result is the uniform envelope every operation returns.
type Result struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data"`
}

// OK wraps a successful result.
func OK(data interface{}) Result {
	return Result{Success: true, Data: data}
}

// Fail wraps an error message.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Failf wraps a formatted error message.
func Failf(format string, args ...interface{}) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// FailErr wraps an error value; storage errors are stringified here
// instead of propagating as faults to callers.
func FailErr(err error) Result {
	if err == nil {
		return Fail("unknown error")
	}
	return Result{Success: false, Error: err.Error()}
}

// User-facing labels for field-name hints on failed operations.
var fieldLabels = map[string]string{
	"title":       "Title",
	"price":       "Price",
	"amount":      "Amount",
	"date":        "Date",
	"category":    "Category",
	"name":        "Name",
	"username":    "Username",
	"email":       "Email",
	"password":    "Password",
	"type":        "Type",
	"description": "Description",
}

// LabelFor returns the user-facing label for a field key, falling back
// to the key itself.
func LabelFor(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// Normalize folds the heterogeneous return shapes of the entity managers
// into one envelope:
//   - a Result passes through untouched;
//   - a slice becomes a successful result carrying the slice (empty included);
//   - boolean true becomes a bare success, false a failure;
//   - any other non-zero value becomes a successful result carrying it;
//   - nil or a zero value fails with "<op> returned no result".
//
// Optional field hints are appended to failures for user-facing contexts.
func Normalize(op string, v interface{}, fieldHints ...string) Result {
	res := normalize(op, v)
	if !res.Success && len(fieldHints) > 0 {
		labels := make([]string, 0, len(fieldHints))
		for _, f := range fieldHints {
			labels = append(labels, LabelFor(f))
		}
		res.Error = res.Error + " (" + strings.Join(labels, ", ") + ")"
	}
	return res
}

func normalize(op string, v interface{}) Result {
	switch t := v.(type) {
	case Result:
		return t
	case *Result:
		if t == nil {
			return Failf("%s returned no result", op)
		}
		return *t
	case nil:
		return Failf("%s returned no result", op)
	case bool:
		if t {
			return OK(nil)
		}
		return Failf("%s returned no result", op)
	case error:
		return FailErr(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return OK(v)
	case reflect.Ptr, reflect.Interface, reflect.Map:
		if rv.IsNil() {
			return Failf("%s returned no result", op)
		}
		return OK(v)
	}

	if rv.IsZero() {
		return Failf("%s returned no result", op)
	}
	return OK(v)
}
