// Package steps defines the ordered review pipeline. Each [Step] turns the
// shared review context, the branch diff, and a short window of earlier step
// findings into one self-contained prompt.
//
// The pipeline is fixed: Overview, Nomenclature, Logic & Potential Bugs,
// Test Analysis, and UX & Production Readiness. Overview is purely
// descriptive and never sees earlier findings; the other steps do.
package steps
