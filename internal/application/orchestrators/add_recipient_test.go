package orchestrators

import (
	"context"
	"errors"
	"testing"

	"bloodbank/internal/domain/donor"
	"bloodbank/internal/domain/recipient"
)

// mockRecipientStore implements RecipientStoreForAdd for testing.
type mockRecipientStore struct {
	reg        *idRegistry
	recipients map[string]recipient.Recipient
	contacts   []recipient.Contact
}

func newMockRecipientStore(reg *idRegistry) *mockRecipientStore {
	return &mockRecipientStore{reg: reg, recipients: map[string]recipient.Recipient{}}
}

func (m *mockRecipientStore) Insert(_ context.Context, r recipient.Recipient) error {
	m.recipients[r.ID] = r
	m.reg.add(r.ID)
	return nil
}

func (m *mockRecipientStore) InsertContact(_ context.Context, c recipient.Contact) error {
	m.contacts = append(m.contacts, c)
	return nil
}

// TestExecuteAddRecipient_Valid tests recipient registration.
func TestExecuteAddRecipient_Valid(t *testing.T) {
	reg := &idRegistry{}
	store := newMockRecipientStore(reg)

	id, err := ExecuteAddRecipient(context.Background(), AddRecipientInput{
		FirstName:  "Mere",
		LastName:   "Kahu",
		Address:    "12 Kowhai Rd",
		Gender:     donor.GenderFemale,
		Age:        52,
		BloodGroup: "A+",
		Contact:    "0215550987",
	}, AddRecipientDeps{Allocator: &scanAllocator{reg: reg}, RecipientStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "R0001" {
		t.Errorf("expected R0001, got %s", id)
	}
	if len(store.contacts) != 1 || store.contacts[0].RecipientID != id {
		t.Error("expected contact child row for the new recipient")
	}
}

// TestExecuteAddRecipient_EmptyContact tests that a missing contact number is
// rejected before any allocation or write.
func TestExecuteAddRecipient_EmptyContact(t *testing.T) {
	reg := &idRegistry{}
	store := newMockRecipientStore(reg)
	alloc := &scanAllocator{reg: reg}

	_, err := ExecuteAddRecipient(context.Background(), AddRecipientInput{
		FirstName:  "Mere",
		LastName:   "Kahu",
		Gender:     donor.GenderFemale,
		Age:        52,
		BloodGroup: "A+",
	}, AddRecipientDeps{Allocator: alloc, RecipientStore: store})
	if !errors.Is(err, ErrEmptyContact) {
		t.Fatalf("expected ErrEmptyContact, got %v", err)
	}
	if alloc.calls != 0 || len(store.recipients) != 0 {
		t.Error("missing contact must abort with zero writes")
	}
}
