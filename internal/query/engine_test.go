package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/shared"
)

func user(id, first, last, email string, gender directory.Gender, role shared.Role) directory.User {
	return directory.User{
		ID:     id,
		Name:   directory.Name{First: first, Last: last},
		Email:  email,
		Gender: gender,
		Role:   role,
	}
}

func sampleUsers() []directory.User {
	return []directory.User{
		user("1", "Bob", "Smith", "bob@example.com", directory.GenderMale, shared.RoleAdmin),
		user("2", "alice", "Jones", "alice@example.com", directory.GenderFemale, shared.RoleViewer),
		user("3", "Carol", "Adams", "carol@example.com", directory.GenderFemale, shared.RoleEditor),
		user("4", "dave", "Brown", "dave@example.com", directory.GenderMale, shared.RoleViewer),
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	result := Apply(sampleUsers(), Params{Search: "jones", Page: 1, PerPage: 10})
	require.Len(t, result.Users, 1)
	assert.Equal(t, "alice", result.Users[0].Name.First)
	assert.Equal(t, "Jones", result.Users[0].Name.Last)
}

func TestSearchMatchesFirstLastAndEmail(t *testing.T) {
	byFirst := Apply(sampleUsers(), Params{Search: "CAROL", Page: 1, PerPage: 10})
	require.Len(t, byFirst.Users, 1)

	byEmail := Apply(sampleUsers(), Params{Search: "dave@", Page: 1, PerPage: 10})
	require.Len(t, byEmail.Users, 1)
	assert.Equal(t, "4", byEmail.Users[0].ID)
}

func TestFiltersAreANDed(t *testing.T) {
	result := Apply(sampleUsers(), Params{
		Gender:  directory.GenderFemale,
		Role:    shared.RoleViewer,
		Page:    1,
		PerPage: 10,
	})
	require.Len(t, result.Users, 1)
	assert.Equal(t, "2", result.Users[0].ID)
}

func TestFilterIsIdempotent(t *testing.T) {
	params := Params{Search: "a", Gender: directory.GenderFemale, Page: 1, PerPage: 10}
	once := Apply(sampleUsers(), params)
	twice := Apply(once.Users, params)
	assert.Equal(t, once.Users, twice.Users)
}

func TestInputSliceIsNotMutated(t *testing.T) {
	users := sampleUsers()
	original := make([]directory.User, len(users))
	copy(original, users)

	Apply(users, Params{SortKey: SortName, SortDir: Descending, Page: 1, PerPage: 10})
	assert.Equal(t, original, users)
}

func TestSortByNameDescendingReversesAscending(t *testing.T) {
	users := sampleUsers()
	asc := Apply(users, Params{SortKey: SortName, SortDir: Ascending, Page: 1, PerPage: 10})
	desc := Apply(users, Params{SortKey: SortName, SortDir: Descending, Page: 1, PerPage: 10})

	require.Len(t, asc.Users, len(users))
	for i := range asc.Users {
		assert.Equal(t, asc.Users[i].ID, desc.Users[len(desc.Users)-1-i].ID)
	}
}

func TestSortByNameIgnoresCase(t *testing.T) {
	result := Apply(sampleUsers(), Params{SortKey: SortName, SortDir: Ascending, Page: 1, PerPage: 10})
	require.Len(t, result.Users, 4)
	// alice Jones < Bob Smith < Carol Adams < dave Brown under case-insensitive
	// full-name collation.
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(result.Users))
}

func TestSortByEmail(t *testing.T) {
	result := Apply(sampleUsers(), Params{SortKey: SortEmail, SortDir: Ascending, Page: 1, PerPage: 10})
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(result.Users))
}

func TestNoSortKeyPreservesFilteredOrder(t *testing.T) {
	result := Apply(sampleUsers(), Params{Gender: directory.GenderMale, Page: 1, PerPage: 10})
	assert.Equal(t, []string{"1", "4"}, ids(result.Users))
}

func TestPaginationPartitionsTheList(t *testing.T) {
	users := make([]directory.User, 0, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("u%02d", i)
		users = append(users, user(id, "First"+id, "Last"+id, id+"@example.com", directory.GenderOther, shared.RoleViewer))
	}

	seen := map[string]int{}
	total := 0
	for page := 1; ; page++ {
		result := Apply(users, Params{Page: page, PerPage: 10})
		if len(result.Users) == 0 {
			break
		}
		for _, u := range result.Users {
			seen[u.ID]++
			total++
		}
	}

	assert.Equal(t, 25, total)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "record %s appeared %d times", id, count)
	}
}

func TestThirdPageOfTwentyFive(t *testing.T) {
	users := make([]directory.User, 0, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("u%02d", i)
		users = append(users, user(id, "A", "B", id+"@example.com", directory.GenderUnset, shared.RoleViewer))
	}

	page3 := Apply(users, Params{Page: 3, PerPage: 10})
	require.Len(t, page3.Users, 5)
	assert.Equal(t, "u20", page3.Users[0].ID)
	assert.Equal(t, "u24", page3.Users[4].ID)
	assert.Equal(t, 3, page3.Pagination.TotalPages)

	page4 := Apply(users, Params{Page: 4, PerPage: 10})
	assert.Empty(t, page4.Users)
}

func TestPageSizeIsClampedToOfferedSet(t *testing.T) {
	result := Apply(sampleUsers(), Params{Page: 1, PerPage: 7})
	assert.Equal(t, shared.DefaultPageSize, result.Pagination.PerPage)
}

func TestNextSort(t *testing.T) {
	key, dir := NextSort(SortNone, Ascending, SortName)
	assert.Equal(t, SortName, key)
	assert.Equal(t, Ascending, dir)

	key, dir = NextSort(key, dir, SortName)
	assert.Equal(t, SortName, key)
	assert.Equal(t, Descending, dir)

	key, dir = NextSort(key, dir, SortEmail)
	assert.Equal(t, SortEmail, key)
	assert.Equal(t, Ascending, dir)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("desc"))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection(""))
	assert.Equal(t, Ascending, ParseDirection("sideways"))
	assert.Equal(t, Ascending, ParseDirection("DESC"))
}

func TestDeterminism(t *testing.T) {
	params := Params{Search: "a", SortKey: SortName, SortDir: Descending, Page: 1, PerPage: 10}
	first := Apply(sampleUsers(), params)
	second := Apply(sampleUsers(), params)
	assert.Equal(t, first, second)
}

func ids(users []directory.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
