package models

import (
	"slices"
	"time"
)

// Selection is the state of one categorical filter.
// All selects every value, otherwise only Values are kept.
type Selection struct {
	All    bool     `json:"all"`
	Values []string `json:"values,omitempty"`
}

// SelectAll is the default selection.
func SelectAll() Selection {
	return Selection{All: true}
}

// Select keeps only the given values.
func Select(values ...string) Selection {
	return Selection{Values: values}
}

func (s Selection) Contains(v string) bool {
	return slices.Contains(s.Values, v)
}

// FilterSelection is the full set of filters applied to a dataset.
// Zero From/To default to the dataset date bounds.
type FilterSelection struct {
	Status  Selection `json:"status"`
	Vehicle Selection `json:"vehicle"`
	Payment Selection `json:"payment"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// DefaultSelection selects everything over the full date range.
func DefaultSelection() FilterSelection {
	return FilterSelection{
		Status:  SelectAll(),
		Vehicle: SelectAll(),
		Payment: SelectAll(),
	}
}

// FilterOption lists the choices of one categorical filter.
type FilterOption struct {
	AllLabel string   `json:"all_label"`
	Values   []string `json:"values"`
}

// Labels returns the sentinel label followed by the real values.
func (o FilterOption) Labels() []string {
	return append([]string{o.AllLabel}, o.Values...)
}

// FilterOptions is everything a client needs to build the filter controls.
type FilterOptions struct {
	Status  FilterOption `json:"status"`
	Vehicle FilterOption `json:"vehicle"`
	Payment FilterOption `json:"payment"`
	MinDate string       `json:"min_date,omitempty"`
	MaxDate string       `json:"max_date,omitempty"`

	// Collisions are real values equal to a sentinel label, keyed by column.
	Collisions map[string]string `json:"collisions,omitempty"`
}

// FilterQuery holds filter control values as the client sent them.
// Category values may contain sentinel labels. Zero dates mean the dataset bounds.
type FilterQuery struct {
	Status  []string  `json:"status,omitempty"`
	Vehicle []string  `json:"vehicle,omitempty"`
	Payment []string  `json:"payment,omitempty"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}
