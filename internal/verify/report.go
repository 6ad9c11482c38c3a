// Package verify independently rechecks the slicing pipeline's outputs. It
// consumes only raw input text and produced output text, never the producer's
// internal state, and recomputes every expectation from first principles.
// Mismatches are collected into a structured report; nothing in this package
// panics or short-circuits on the first failure.
package verify

import "fmt"

// Category is one named verification check: a pass flag plus the ordered
// issues collected while the check ran.
type Category struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// Report maps category names to their results, preserving the order in which
// categories were created. Built incrementally, then frozen and returned.
type Report struct {
	order      []string
	categories map[string]*Category
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{categories: make(map[string]*Category)}
}

// Category returns the named category, creating it in the passed state if it
// does not exist yet.
func (r *Report) Category(name string) *Category {
	if c, ok := r.categories[name]; ok {
		return c
	}
	c := &Category{Passed: true, Issues: []string{}}
	r.categories[name] = c
	r.order = append(r.order, name)
	return c
}

// Fail records an issue and marks the category failed.
func (c *Category) Fail(format string, args ...any) {
	c.Passed = false
	c.Issues = append(c.Issues, fmt.Sprintf(format, args...))
}

// Merge appends all categories of other into r, keeping other's order.
// Categories with the same name are combined.
func (r *Report) Merge(other *Report) {
	for _, name := range other.order {
		src := other.categories[name]
		dst := r.Category(name)
		if !src.Passed {
			dst.Passed = false
		}
		dst.Issues = append(dst.Issues, src.Issues...)
	}
}

// OverallPassed is the conjunction of all category results.
func (r *Report) OverallPassed() bool {
	for _, c := range r.categories {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Names returns category names in creation order.
func (r *Report) Names() []string {
	return append([]string(nil), r.order...)
}

// Results returns a value copy of all categories, suitable for serialization.
func (r *Report) Results() map[string]Category {
	out := make(map[string]Category, len(r.categories))
	for name, c := range r.categories {
		issues := append([]string(nil), c.Issues...)
		if issues == nil {
			issues = []string{}
		}
		out[name] = Category{Passed: c.Passed, Issues: issues}
	}
	return out
}

// Counts summarizes graph sizes before and after filtering.
type Counts struct {
	OriginalNodes int `json:"original_nodes"`
	OriginalEdges int `json:"original_edges"`
	FilteredNodes int `json:"filtered_nodes"`
	FilteredEdges int `json:"filtered_edges"`
}

// Document is the persisted report shape. Field names are part of the
// contract with the orchestrator collaborator and must stay stable.
type Document struct {
	Files         map[string]string   `json:"files"`
	Counts        Counts              `json:"counts"`
	Results       map[string]Category `json:"verification_results"`
	OverallPassed bool                `json:"overall_passed"`
}

// Document freezes the report into its persisted form.
func (r *Report) Document(files map[string]string, counts Counts) Document {
	if files == nil {
		files = map[string]string{}
	}
	return Document{
		Files:         files,
		Counts:        counts,
		Results:       r.Results(),
		OverallPassed: r.OverallPassed(),
	}
}
