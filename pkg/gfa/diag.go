package gfa

import (
	"errors"
	"fmt"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// Diagnostic is a non-fatal finding from parsing, verification or schema
// conversion. Line is the 1-based input line, or 0 when the finding is not
// tied to a line.
type Diagnostic struct {
	Code    errs.Code
	Line    int
	Message string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

// Has reports whether any diagnostic carries code.
func (ds Diagnostics) Has(code errs.Code) bool {
	return ds.Count(code) > 0
}

// Count returns the number of diagnostics carrying code.
func (ds Diagnostics) Count(code errs.Code) int {
	n := 0
	for _, d := range ds {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Filter returns the diagnostics carrying code, in order.
func (ds Diagnostics) Filter(code errs.Code) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Summary counts diagnostics per code.
func (ds Diagnostics) Summary() map[errs.Code]int {
	m := make(map[errs.Code]int)
	for _, d := range ds {
		m[d.Code]++
	}
	return m
}

// Err joins all diagnostics into one error, or returns nil when empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	list := make([]error, len(ds))
	for i, d := range ds {
		list[i] = d
	}
	return errors.Join(list...)
}

func (ds *Diagnostics) addf(code errs.Code, line int, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Code: code, Line: line, Message: fmt.Sprintf(format, args...)})
}

// addErr records err at line, taking the code from a structured error.
func (ds *Diagnostics) addErr(line int, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeLineParse
	}
	*ds = append(*ds, Diagnostic{Code: code, Line: line, Message: errs.UserMessage(err)})
}
