package lawyers

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid query")

// Lawyer is a directory entry.
type Lawyer struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Specialization  []string `yaml:"specialization"`
	Location        string   `yaml:"location"`
	Rating          float64  `yaml:"rating"`
	ExperienceYears int      `yaml:"experience_years"`
	ImageURL        string   `yaml:"image_url"`
	Email           string   `yaml:"email"`
	Phone           string   `yaml:"phone"`
	Available       bool     `yaml:"available"`
}

const (
	SortRating     = "rating"
	SortExperience = "experience_years"
	SortName       = "name"

	DefaultLimit = 10
	MaxLimit     = 100
)

// Query filters and pages the directory. Zero values mean "no filter".
type Query struct {
	Text            string
	Specializations []string
	Location        string
	MinRating       float64
	SortBy          string
	Descending      bool
	Limit           int
	Page            int
}

// Normalize fills defaults and rejects unknown sort keys.
func (q Query) Normalize() (Query, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.Location = strings.TrimSpace(q.Location)
	specs := q.Specializations[:0:0]
	for _, s := range q.Specializations {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}
	q.Specializations = specs

	switch q.SortBy {
	case "":
		q.SortBy = SortRating
	case SortRating, SortExperience, SortName:
	default:
		return Query{}, ErrInvalidQuery
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return Query{}, ErrInvalidQuery
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q, nil
}

// Offset is the number of rows skipped for the page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Repo searches and seeds the directory.
type Repo interface {
	Search(ctx context.Context, q Query) ([]Lawyer, int, error)
	Upsert(ctx context.Context, lawyers []Lawyer) error
}
