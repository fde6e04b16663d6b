// Package scope defines named, composable retrieval predicates and
// orderings as plain data. A Query is lazily describable: the postgres
// adapter compiles it to SQL, and Apply* evaluate it eagerly in memory.
// Both interpretations must agree on the final filtering and ordering.
package scope

import (
	"sort"

	"blogsvc/internal/core/domain"
)

// Cond is an equality predicate on a named field.
type Cond struct {
	Field string
	Value any
}

// Order is a single ordering term.
type Order struct {
	Field string
	Desc  bool
}

// Query is a composed set of predicates (AND) and orderings. The zero
// value matches everything in storage order.
type Query struct {
	Conds  []Cond
	Orders []Order
}

// And merges two queries: predicates are AND-ed, orderings concatenated.
func (q Query) And(other Query) Query {
	return Query{
		Conds:  append(append([]Cond{}, q.Conds...), other.Conds...),
		Orders: append(append([]Order{}, q.Orders...), other.Orders...),
	}
}

// Published matches posts with published == true.
func Published() Query {
	return Query{Conds: []Cond{{Field: "published", Value: true}}}
}

// Recent orders posts by created_at descending. Ties keep insertion order.
func Recent() Query {
	return Query{Orders: []Order{{Field: "created_at", Desc: true}}}
}

// Active matches users with active == true.
func Active() Query {
	return Query{Conds: []Cond{{Field: "active", Value: true}}}
}

// SortedByName orders users by name ascending, lexicographic.
func SortedByName() Query {
	return Query{Orders: []Order{{Field: "name"}}}
}

// ApplyUsers evaluates q eagerly over a user slice.
func ApplyUsers(q Query, users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if matchUser(q.Conds, &u) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessUser(q.Orders, &out[i], &out[j])
	})
	return out
}

// ApplyPosts evaluates q eagerly over a post slice.
func ApplyPosts(q Query, posts []domain.Post) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if matchPost(q.Conds, &p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessPost(q.Orders, &out[i], &out[j])
	})
	return out
}

func matchUser(conds []Cond, u *domain.User) bool {
	for _, c := range conds {
		switch c.Field {
		case "active":
			if u.Active != c.Value.(bool) {
				return false
			}
		case "user_type":
			if u.UserType != domain.UserType(c.Value.(string)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchPost(conds []Cond, p *domain.Post) bool {
	for _, c := range conds {
		switch c.Field {
		case "published":
			if p.Published != c.Value.(bool) {
				return false
			}
		case "user_id":
			if p.UserID != c.Value.(int64) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func lessUser(orders []Order, a, b *domain.User) bool {
	for _, o := range orders {
		if o.Field != "name" || a.Name == b.Name {
			continue
		}
		if o.Desc {
			return a.Name > b.Name
		}
		return a.Name < b.Name
	}
	return false
}

func lessPost(orders []Order, a, b *domain.Post) bool {
	for _, o := range orders {
		if o.Field != "created_at" || a.CreatedAt.Equal(b.CreatedAt) {
			continue
		}
		if o.Desc {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return false
}
