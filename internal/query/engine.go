// Package query computes the displayed view of the directory: the filtered,
// sorted, paginated subset of records. It never mutates the store; identical
// inputs always produce identical output.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/shared"
)

// SortKey selects the comparator applied to the filtered list.
type SortKey string

const (
	SortNone  SortKey = ""
	SortName  SortKey = "name"
	SortEmail SortKey = "email"
)

// Direction orients the comparator.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection normalizes a raw direction value. Anything other than
// "desc" is ascending, so unknown input never leaks into retained state.
func ParseDirection(raw string) Direction {
	if Direction(raw) == Descending {
		return Descending
	}
	return Ascending
}

// Params is the filter/sort/page state driving one view computation.
type Params struct {
	Search  string           `json:"search"`
	Gender  directory.Gender `json:"gender"`
	Role    shared.Role      `json:"role"`
	SortKey SortKey          `json:"sort_key"`
	SortDir Direction        `json:"sort_dir"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// Result is one computed page plus its pagination metadata.
type Result struct {
	Users      []directory.User  `json:"users"`
	Pagination shared.Pagination `json:"pagination"`
}

// NextSort returns the sort state after the given key is selected: toggling
// the active key flips direction, a new key starts ascending.
func NextSort(key SortKey, dir Direction, selected SortKey) (SortKey, Direction) {
	if key == selected && dir == Ascending {
		return selected, Descending
	}
	return selected, Ascending
}

// Apply computes the view. Filtering, sorting and pagination are applied in
// that order over a copy; the input slice is left untouched.
func Apply(users []directory.User, p Params) Result {
	filtered := filter(users, p)
	sorted := sortUsers(filtered, p.SortKey, p.SortDir)

	perPage := shared.NormalizePageSize(p.PerPage)
	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	var pageUsers []directory.User
	switch {
	case start >= len(sorted):
		pageUsers = []directory.User{}
	case end > len(sorted):
		pageUsers = sorted[start:]
	default:
		pageUsers = sorted[start:end]
	}

	return Result{
		Users:      pageUsers,
		Pagination: shared.NewPagination(page, perPage, len(sorted)),
	}
}

func filter(users []directory.User, p Params) []directory.User {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	result := make([]directory.User, 0, len(users))
	for _, u := range users {
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		if p.Gender != "" && u.Gender != p.Gender {
			continue
		}
		if p.Role != "" && u.Role != p.Role {
			continue
		}
		result = append(result, u)
	}
	return result
}

func matchesSearch(u directory.User, search string) bool {
	return strings.Contains(strings.ToLower(u.Name.First), search) ||
		strings.Contains(strings.ToLower(u.Name.Last), search) ||
		strings.Contains(strings.ToLower(u.Email), search)
}

func sortUsers(users []directory.User, key SortKey, dir Direction) []directory.User {
	if key == SortNone {
		return users
	}

	var cmp func(a, b directory.User) int
	switch key {
	case SortName:
		// The collator buffers internally, so one instance per computation.
		coll := collate.New(language.English, collate.IgnoreCase)
		cmp = func(a, b directory.User) int {
			return coll.CompareString(a.Name.Full(), b.Name.Full())
		}
	case SortEmail:
		cmp = func(a, b directory.User) int {
			return strings.Compare(a.Email, b.Email)
		}
	default:
		return users
	}

	sort.SliceStable(users, func(i, j int) bool {
		c := cmp(users[i], users[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return users
}
