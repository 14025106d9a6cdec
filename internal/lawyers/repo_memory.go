package lawyers

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Lawyer
}

// NewMemoryRepo constructs a MemoryRepo holding the given entries.
func NewMemoryRepo(seed ...Lawyer) *MemoryRepo {
	r := &MemoryRepo{data: make(map[string]Lawyer)}
	for _, l := range seed {
		r.data[l.ID] = l
	}
	return r
}

func (r *MemoryRepo) Search(ctx context.Context, q Query) ([]Lawyer, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	matches := make([]Lawyer, 0, len(r.data))
	for _, l := range r.data {
		if matchesQuery(l, q) {
			matches = append(matches, l)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		var less, equal bool
		switch q.SortBy {
		case SortExperience:
			less, equal = a.ExperienceYears < b.ExperienceYears, a.ExperienceYears == b.ExperienceYears
		case SortName:
			less, equal = a.Name < b.Name, a.Name == b.Name
		default:
			less, equal = a.Rating < b.Rating, a.Rating == b.Rating
		}
		if equal {
			return a.Name < b.Name
		}
		if q.Descending {
			return !less
		}
		return less
	})

	total := len(matches)
	start := q.Offset()
	if start >= total {
		return []Lawyer{}, total, nil
	}
	end := start + q.Limit
	if q.Limit <= 0 || end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, lawyers []Lawyer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range lawyers {
		r.data[l.ID] = l
	}
	return nil
}

func matchesQuery(l Lawyer, q Query) bool {
	if q.Text != "" && !containsFold(l.Name, q.Text) && !containsFold(l.Location, q.Text) {
		return false
	}
	if q.Location != "" && !containsFold(l.Location, q.Location) {
		return false
	}
	if q.MinRating > 0 && l.Rating < q.MinRating {
		return false
	}
	if len(q.Specializations) > 0 && !hasAny(l.Specialization, q.Specializations) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

var _ Repo = (*MemoryRepo)(nil)
