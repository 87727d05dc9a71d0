package manager

import (
	"testing"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddContactAndListScoped(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	bob := registerUser(t, dm, "bob")

	require.True(t, dm.Contacts.Add(alice, "Charlie").Success)
	require.True(t, dm.Contacts.Add(bob, "Dana").Success)

	res := dm.Contacts.List(alice)
	require.True(t, res.Success)
	contacts := res.Data.([]models.Contact)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Charlie", contacts[0].Name)
}

func TestAddContactValidation(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")

	res := dm.Contacts.Add(alice, "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "name")

	res = dm.Contacts.Add(alice, "   ")
	assert.False(t, res.Success)
}

func TestAddContactDuplicatePerUser(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	bob := registerUser(t, dm, "bob")

	require.True(t, dm.Contacts.Add(alice, "Charlie").Success)

	res := dm.Contacts.Add(alice, "Charlie")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "already exists")

	// the same name under another user is fine
	assert.True(t, dm.Contacts.Add(bob, "Charlie").Success)
}

func TestDeleteContactOwnershipScoped(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	bob := registerUser(t, dm, "bob")

	require.True(t, dm.Contacts.Add(alice, "Charlie").Success)
	var contact models.Contact
	require.NoError(t, dm.DB.Where("user_id = ?", alice).First(&contact).Error)

	res := dm.Contacts.Delete(contact.ID, bob)
	require.True(t, res.Success)
	assert.EqualValues(t, 0, deletedCount(t, res.Data))

	res = dm.Contacts.Delete(contact.ID, alice)
	require.True(t, res.Success)
	assert.EqualValues(t, 1, deletedCount(t, res.Data))

	// deleting again reports zero, not an error
	res = dm.Contacts.Delete(contact.ID, alice)
	require.True(t, res.Success)
	assert.EqualValues(t, 0, deletedCount(t, res.Data))
}

func TestContactExistsForUser(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	bob := registerUser(t, dm, "bob")

	require.True(t, dm.Contacts.Add(alice, "Charlie").Success)
	var contact models.Contact
	require.NoError(t, dm.DB.Where("user_id = ?", alice).First(&contact).Error)

	assert.True(t, dm.Contacts.ExistsForUser(contact.ID, alice))
	assert.False(t, dm.Contacts.ExistsForUser(contact.ID, bob))
	assert.False(t, dm.Contacts.ExistsForUser(9999, alice))
}
