package store

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/descriptor"
)

var exportedMember = regexp.MustCompile(`(?m)^export const (\w+) = \(\.\.\.args\) =>`)

func exportedMembers(module string) []string {
	var names []string
	for _, m := range exportedMember.FindAllStringSubmatch(module, -1) {
		names = append(names, m[1])
	}
	return names
}

func TestMemberNames_DependOnlyOnSuffix(t *testing.T) {
	variants := []string{"client-submissions", "client_submissions", "Client Submissions", "CLIENT-SUBMISSIONS"}

	want := MemberNames(CollectionSpec{Name: "client-submissions"})
	require.Contains(t, want, "fetchInitialPageClientSubmissions")
	for _, v := range variants {
		c := CollectionSpec{Name: v}
		assert.Equal(t, "ClientSubmissions", c.Suffix(), v)
		assert.Equal(t, want, MemberNames(c), v)
	}
}

func TestMemberNames_CamelCaseInputIsOneWord(t *testing.T) {
	c := CollectionSpec{Name: "clientSubmissions"}
	assert.Equal(t, "Clientsubmissions", c.Suffix())
	assert.Contains(t, MemberNames(c), "fetchInitialPageClientsubmissions")
}

func TestComposeCollection_MembersMatchDescriptors(t *testing.T) {
	for _, name := range []string{"client-submissions", "client_submissions"} {
		t.Run(name, func(t *testing.T) {
			out, err := ComposeCollection(CollectionSpec{Name: name})
			require.NoError(t, err)

			var want []string
			for _, d := range descriptor.ForCollection(false) {
				want = append(want, d.Name("ClientSubmissions"))
			}
			assert.Equal(t, want, exportedMembers(out))
		})
	}
}

func TestComposeCollection_Idempotent(t *testing.T) {
	c := CollectionSpec{Name: "users", IsAuth: true}

	first, err := ComposeCollection(c)
	require.NoError(t, err)
	second, err := ComposeCollection(c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComposeCollection_AuthGating(t *testing.T) {
	plain, err := ComposeCollection(CollectionSpec{Name: "products"})
	require.NoError(t, err)
	assert.NotContains(t, plain, "assignProductsRoles")
	assert.NotContains(t, plain, "revokeProductsRoles")
	assert.NotContains(t, plain, "Roles")

	auth, err := ComposeCollection(CollectionSpec{Name: "users", IsAuth: true})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(auth, "export const assignUsersRoles "))
	assert.Equal(t, 1, strings.Count(auth, "export const revokeUsersRoles "))
	assert.Contains(t, auth, "getActions().assignRoles(...args)")
	assert.Contains(t, auth, "getActions().revokeRoles(...args)")
}

func TestComposeCollection_Shape(t *testing.T) {
	out, err := ComposeCollection(CollectionSpec{Name: "orders"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `// Generated by plume. Actions for the orders collection.

import { useFirestoreCollectionActions } from '../useFirestoreCollectionActions'
import { state } from '../state'

let actions = null

const getActions = () => {
  if (!actions) {
    actions = useFirestoreCollectionActions('orders', state)
  }
  return actions
}

/**
 * Fetch the first page of orders using the current filters and sort.
 */
export const fetchInitialPageOrders = (...args) => getActions().fetchInitialPage(...args)
`), out)

	assert.Contains(t, out, `/**
 * Change the sort field and direction for orders and reload the first page.
 *
 * @param field
 * @param [direction='asc']
 */
export const changeOrdersSort = (...args) => getActions().changeSort(...args)
`)

	assert.Contains(t, out, "export const deleteOrders = (...args) => getActions().remove(...args)")
	assert.True(t, strings.HasSuffix(out, `export const ordersActions = {
  fetchInitialPageOrders,
  fetchNextPageOrders,
  applyOrdersFilters,
  changeOrdersSort,
  addOrders,
  getOrdersById,
  getOrdersWhere,
  updateOrders,
  searchOrders,
  clearOrdersSearch,
  deleteOrders,
}

export default ordersActions
`), out)
}

func TestComposeCollection_QuotesCollectionPath(t *testing.T) {
	out, err := ComposeCollection(CollectionSpec{Name: "client-submissions"})
	require.NoError(t, err)

	assert.Contains(t, out, "useFirestoreCollectionActions('client-submissions', state)")
	assert.Contains(t, out, "export const clientSubmissionsActions = {")
}

func TestComposeCollection_InvalidName(t *testing.T) {
	for _, name := range []string{"", "1orders", "orders!", "client submissions", "-x"} {
		t.Run(name, func(t *testing.T) {
			out, err := ComposeCollection(CollectionSpec{Name: name})
			require.Error(t, err)
			assert.Empty(t, out)

			var inv *InvalidCollectionNameError
			require.True(t, errors.As(err, &inv))
			assert.Equal(t, name, inv.Name)
			assert.ErrorIs(t, err, ErrInput)
		})
	}
}

func TestParamDoc(t *testing.T) {
	assert.Equal(t, "id", paramDoc("id"))
	assert.Equal(t, "[direction='asc']", paramDoc("direction = 'asc'"))
}
