package data

// DiagnosticKind labels the advisory conditions preprocessing can report.
type DiagnosticKind int

const (
	// DiagNoTimeIndex is reported when meaningful row labels were expected
	// but the container carries none, so a range index is generated.
	DiagNoTimeIndex DiagnosticKind = iota
	// DiagNoFrequency is reported when a calendar index carries no sampling
	// frequency and one had to be inferred.
	DiagNoFrequency
	// DiagImputation is reported when missing values were masked and will be
	// imputed as hidden states during filtering.
	DiagImputation
)

// Diagnostic is an advisory message produced alongside a preprocessing
// result. Diagnostics never halt execution; they are returned to the caller
// instead of being written to a global warning stream.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string { return d.Message }

func noTimeIndexDiag() Diagnostic {
	return Diagnostic{
		Kind: DiagNoTimeIndex,
		Message: "no time index found on the supplied data; " +
			"a simple range index will be automatically generated",
	}
}

func noFrequencyDiag() Diagnostic {
	return Diagnostic{
		Kind: DiagNoFrequency,
		Message: "no frequency was specified on the data's time index; " +
			"the inferred frequency will be used",
	}
}

func imputationDiag() Diagnostic {
	return Diagnostic{
		Kind: DiagImputation,
		Message: "data contains missing values and will be automatically " +
			"imputed as hidden states during Kalman filtering",
	}
}

// HasDiagnostic reports whether diags contains a diagnostic of the given kind.
func HasDiagnostic(diags []Diagnostic, kind DiagnosticKind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
