package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

type stubAuth struct {
	user *models.User
	err  error
}

func (a *stubAuth) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	return a.user, a.err
}

func (a *stubAuth) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	return a.user, a.err
}

// stubStore records writes and listen attachments; its streams never emit.
type stubStore struct {
	mu              sync.Mutex
	nextID          int
	addedPantry     []models.PantryItem
	addedShopping   []models.ShoppingItem
	pantryUpdates   map[string]map[string]interface{}
	shoppingUpdates map[string]map[string]interface{}
	pantryDeletes   []string
	shoppingDeletes []string
	pantryListens   []string
	shoppingListens []string
}

func newStubStore() *stubStore {
	return &stubStore{
		pantryUpdates:   make(map[string]map[string]interface{}),
		shoppingUpdates: make(map[string]map[string]interface{}),
	}
}

func (s *stubStore) AddPantryItem(ctx context.Context, item models.PantryItem) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.addedPantry = append(s.addedPantry, item)
	return fmt.Sprintf("pantry-%d", s.nextID), nil
}

func (s *stubStore) UpdatePantryItem(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantryUpdates[id] = fields
	return nil
}

func (s *stubStore) DeletePantryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantryDeletes = append(s.pantryDeletes, id)
	return nil
}

func (s *stubStore) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.addedShopping = append(s.addedShopping, item)
	return fmt.Sprintf("shopping-%d", s.nextID), nil
}

func (s *stubStore) UpdateShoppingItem(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingUpdates[id] = fields
	return nil
}

func (s *stubStore) DeleteShoppingItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingDeletes = append(s.shoppingDeletes, id)
	return nil
}

func (s *stubStore) ListenPantry(ctx context.Context, userID string) (<-chan []DocChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantryListens = append(s.pantryListens, userID)
	return make(chan []DocChange), nil
}

func (s *stubStore) ListenShopping(ctx context.Context, userID string) (<-chan []DocChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingListens = append(s.shoppingListens, userID)
	return make(chan []DocChange), nil
}

func pantryDoc(name string, qty int, barcode, userID string) map[string]interface{} {
	return pantryFields(models.PantryItem{
		Name:     name,
		Quantity: qty,
		Category: models.CategoryDairy,
		Barcode:  barcode,
		UserID:   userID,
	})
}

func TestApplyPantryChangesArithmetic(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
		{Kind: ChangeAdded, ID: "b", Data: pantryDoc("Bread", 1, "", "u1")},
		{Kind: ChangeAdded, ID: "c", Data: pantryDoc("Eggs", 6, "", "u1")},
	})
	if got := len(hub.PantryItems()); got != 3 {
		t.Fatalf("after 3 adds, len = %d, want 3", got)
	}

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeModified, ID: "b", Data: pantryDoc("Bread", 2, "", "u1")},
		{Kind: ChangeRemoved, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
	})

	items := hub.PantryItems()
	if len(items) != 2 {
		t.Fatalf("after remove, len = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.ID == "a" {
			t.Error("removed item a still present")
		}
		if item.ID == "b" && item.Quantity != 2 {
			t.Errorf("item b quantity = %d, want last-applied 2", item.Quantity)
		}
	}
}

func TestApplyPantryChangesDuplicateDelivery(t *testing.T) {
	// Duplicate or replayed changes are applied by ID, so they must not
	// create duplicate cache entries or corrupt anything.
	hub := NewHub(newStubStore(), &stubAuth{})

	batch := []DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
	}
	hub.ApplyPantryChanges(batch)
	hub.ApplyPantryChanges(batch)

	if got := len(hub.PantryItems()); got != 1 {
		t.Errorf("after duplicate add, len = %d, want 1", got)
	}

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeRemoved, ID: "nope", Data: map[string]interface{}{}},
	})
	if got := len(hub.PantryItems()); got != 1 {
		t.Errorf("after removing unknown id, len = %d, want 1", got)
	}
}

func TestAddObserverImmediateSnapshot(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})

	var pantryCalls, shoppingCalls, authCalls int
	o := &Observer{
		Kind:             ListenerAll,
		OnPantryChange:   func(items []models.PantryItem) { pantryCalls++ },
		OnShoppingChange: func(items []models.ShoppingItem) { shoppingCalls++ },
		OnAuthChange:     func(user *models.User) { authCalls++ },
	}
	hub.AddObserver(o)

	if pantryCalls != 1 || shoppingCalls != 1 || authCalls != 1 {
		t.Errorf("immediate snapshot calls = %d/%d/%d, want 1/1/1",
			pantryCalls, shoppingCalls, authCalls)
	}

	// Re-registering must not double-register or re-deliver.
	hub.AddObserver(o)
	if pantryCalls != 1 {
		t.Errorf("after re-register, pantry calls = %d, want 1", pantryCalls)
	}

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
	})
	if pantryCalls != 2 {
		t.Errorf("after one batch, pantry calls = %d, want 2", pantryCalls)
	}
}

func TestObserverInterestFiltering(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})

	var pantryNotified, shoppingNotified int
	pantryOnly := &Observer{
		Kind:           ListenerPantry,
		OnPantryChange: func(items []models.PantryItem) { pantryNotified++ },
	}
	shoppingOnly := &Observer{
		Kind:             ListenerShopping,
		OnShoppingChange: func(items []models.ShoppingItem) { shoppingNotified++ },
	}
	hub.AddObserver(pantryOnly)
	hub.AddObserver(shoppingOnly)
	pantryNotified, shoppingNotified = 0, 0 // discard registration snapshots

	hub.ApplyShoppingChanges([]DocChange{
		{Kind: ChangeAdded, ID: "s1", Data: shoppingFields(models.ShoppingItem{Name: "Butter", Quantity: 1, UserID: "u1"})},
	})

	if pantryNotified != 0 {
		t.Errorf("pantry observer notified %d times for a shopping change", pantryNotified)
	}
	if shoppingNotified != 1 {
		t.Errorf("shopping observer notified %d times, want 1", shoppingNotified)
	}
}

func TestRemoveObserver(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})

	var calls int
	o := &Observer{
		Kind:           ListenerPantry,
		OnPantryChange: func(items []models.PantryItem) { calls++ },
	}
	hub.AddObserver(o)
	hub.RemoveObserver(o)
	hub.RemoveObserver(o) // no-op when already gone

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
	})
	if calls != 1 {
		t.Errorf("calls = %d, want only the registration snapshot", calls)
	}
}

func TestAddPantryItemBarcodeMerge(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{user: &models.User{ID: "u1", Email: "u1@example.com"}})
	if _, err := hub.SignIn(context.Background(), "u1@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Choc Milk", 2, "123", "u1")},
	})

	item, err := hub.AddPantryItem(context.Background(), PantryItemInput{
		Name:     "Choc Milk",
		Quantity: 3,
		Barcode:  "123",
	})
	if err != nil {
		t.Fatalf("AddPantryItem: %v", err)
	}

	if item.ID != "a" {
		t.Errorf("merged item ID = %q, want existing a", item.ID)
	}
	if item.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", item.Quantity)
	}

	items := hub.PantryItems()
	if len(items) != 1 {
		t.Fatalf("cache len = %d, want 1 (merge must not duplicate)", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("cached quantity = %d, want 5", items[0].Quantity)
	}

	if len(store.addedPantry) != 0 {
		t.Errorf("merge created %d new documents, want 0", len(store.addedPantry))
	}
	if fields, ok := store.pantryUpdates["a"]; !ok || fields["quantity"] != 5 {
		t.Errorf("remote quantity update = %v, want quantity 5 on doc a", fields)
	}
}

func TestAddPantryItemEmptyBarcodeAlwaysAppends(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{user: &models.User{ID: "u1", Email: "u1@example.com"}})
	if _, err := hub.SignIn(context.Background(), "u1@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	first, err := hub.AddPantryItem(context.Background(), PantryItemInput{Name: "Milk", Quantity: 1})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := hub.AddPantryItem(context.Background(), PantryItemInput{Name: "Milk", Quantity: 1})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("same-name adds without barcode shared ID %q, want distinct entities", first.ID)
	}
	if len(store.addedPantry) != 2 {
		t.Errorf("store received %d adds, want 2", len(store.addedPantry))
	}
	for _, item := range store.addedPantry {
		if item.UserID != "u1" {
			t.Errorf("added item UserID = %q, want current user u1", item.UserID)
		}
	}
}

func TestAddWithoutSessionRejected(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{})

	_, err := hub.AddPantryItem(context.Background(), PantryItemInput{Name: "Milk", Quantity: 1})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("pantry add err = %v, want ErrNoSession", err)
	}
	_, err = hub.AddShoppingItem(context.Background(), models.ShoppingItem{Name: "Butter", Quantity: 1})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("shopping add err = %v, want ErrNoSession", err)
	}

	if len(store.addedPantry) != 0 || len(store.addedShopping) != 0 {
		t.Errorf("store received %d/%d writes without a session, want none",
			len(store.addedPantry), len(store.addedShopping))
	}
}

func TestResumeAttachesStreams(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{})

	hub.Resume(&models.User{ID: "u1", Email: "u1@example.com"})

	if id, ok := hub.CurrentUserID(); !ok || id != "u1" {
		t.Errorf("CurrentUserID = %q/%v, want u1/true", id, ok)
	}
	if len(store.pantryListens) != 1 || len(store.shoppingListens) != 1 {
		t.Errorf("listens = %v/%v, want one of each",
			store.pantryListens, store.shoppingListens)
	}

	item, err := hub.AddPantryItem(context.Background(), PantryItemInput{Name: "Milk", Quantity: 1})
	if err != nil {
		t.Fatalf("AddPantryItem after resume: %v", err)
	}
	if len(store.addedPantry) != 1 || store.addedPantry[0].UserID != "u1" {
		t.Errorf("persisted doc userId = %v, want u1", store.addedPantry)
	}
	if item.UserID != "u1" {
		t.Errorf("returned item UserID = %q, want u1", item.UserID)
	}
}

func TestFindPantryItemByBarcode(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})
	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Choc Milk", 2, "123", "u1")},
		{Kind: ChangeAdded, ID: "b", Data: pantryDoc("Bread", 1, "", "u1")},
	})

	item, ok := hub.FindPantryItemByBarcode("123")
	if !ok || item.ID != "a" {
		t.Errorf("lookup 123 = %+v/%v, want item a", item, ok)
	}
	if _, ok := hub.FindPantryItemByBarcode("999"); ok {
		t.Error("unknown barcode reported found")
	}
	// An empty barcode never matches, even though item b has one.
	if _, ok := hub.FindPantryItemByBarcode(""); ok {
		t.Error("empty barcode reported found")
	}
}

func TestSignInAttachesStreams(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{user: &models.User{ID: "u1", Email: "u1@example.com"}})

	var authUser *models.User
	hub.AddObserver(&Observer{
		Kind:         ListenerAuth,
		OnAuthChange: func(user *models.User) { authUser = user },
	})

	user, err := hub.SignIn(context.Background(), "u1@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user.ID = %q, want u1", user.ID)
	}

	if id, ok := hub.CurrentUserID(); !ok || id != "u1" {
		t.Errorf("CurrentUserID = %q/%v, want u1/true", id, ok)
	}
	if len(store.pantryListens) != 1 || store.pantryListens[0] != "u1" {
		t.Errorf("pantry listens = %v, want [u1]", store.pantryListens)
	}
	if len(store.shoppingListens) != 1 || store.shoppingListens[0] != "u1" {
		t.Errorf("shopping listens = %v, want [u1]", store.shoppingListens)
	}
	if authUser == nil || authUser.ID != "u1" {
		t.Errorf("auth observer got %+v, want user u1", authUser)
	}
}

func TestSignInFailureLeavesHubUntouched(t *testing.T) {
	store := newStubStore()
	authErr := &AuthError{Code: AuthCodeInvalidEmail, Message: "INVALID_EMAIL"}
	hub := NewHub(store, &stubAuth{err: authErr})

	_, err := hub.SignIn(context.Background(), "not-an-email", "secret1")
	if err == nil {
		t.Fatal("SignIn succeeded, want failure")
	}
	ae, ok := AsAuthError(err)
	if !ok || ae.Code != AuthCodeInvalidEmail {
		t.Errorf("error = %v, want AuthError with INVALID_EMAIL", err)
	}

	if _, ok := hub.CurrentUserID(); ok {
		t.Error("current user set after failed sign-in")
	}
	if len(store.pantryListens) != 0 || len(store.shoppingListens) != 0 {
		t.Errorf("listeners attached after failed sign-in: %v %v",
			store.pantryListens, store.shoppingListens)
	}
}

func TestSignOutClearsCachesAndNotifies(t *testing.T) {
	store := newStubStore()
	hub := NewHub(store, &stubAuth{user: &models.User{ID: "u1", Email: "u1@example.com"}})
	if _, err := hub.SignIn(context.Background(), "u1@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
		{Kind: ChangeAdded, ID: "b", Data: pantryDoc("Bread", 1, "", "u1")},
	})
	hub.ApplyShoppingChanges([]DocChange{
		{Kind: ChangeAdded, ID: "s1", Data: shoppingFields(models.ShoppingItem{Name: "Butter", Quantity: 1, UserID: "u1"})},
	})

	var gotPantry []models.PantryItem
	var gotShopping []models.ShoppingItem
	var gotUser *models.User
	userSet := true
	hub.AddObserver(&Observer{
		Kind:             ListenerAll,
		OnPantryChange:   func(items []models.PantryItem) { gotPantry = items },
		OnShoppingChange: func(items []models.ShoppingItem) { gotShopping = items },
		OnAuthChange: func(user *models.User) {
			gotUser = user
			userSet = user != nil
		},
	})

	hub.SignOut()

	if len(hub.PantryItems()) != 0 || len(hub.ShoppingItems()) != 0 {
		t.Error("caches not empty after sign-out")
	}
	if gotPantry == nil || len(gotPantry) != 0 {
		t.Errorf("pantry notification = %v, want empty array", gotPantry)
	}
	if gotShopping == nil || len(gotShopping) != 0 {
		t.Errorf("shopping notification = %v, want empty array", gotShopping)
	}
	if userSet || gotUser != nil {
		t.Errorf("auth notification = %+v, want nil user", gotUser)
	}
	if _, ok := hub.CurrentUserID(); ok {
		t.Error("current user still set after sign-out")
	}
}

func TestObserverSnapshotsAreCopies(t *testing.T) {
	hub := NewHub(newStubStore(), &stubAuth{})
	hub.ApplyPantryChanges([]DocChange{
		{Kind: ChangeAdded, ID: "a", Data: pantryDoc("Milk", 1, "", "u1")},
	})

	items := hub.PantryItems()
	items[0].Quantity = 999

	if got := hub.PantryItems()[0].Quantity; got != 1 {
		t.Errorf("mutating a snapshot changed the cache: quantity = %d, want 1", got)
	}
}

func TestHubWithMemoryStoreEndToEnd(t *testing.T) {
	store := NewMemoryStore()
	hub := NewHub(store, &stubAuth{user: &models.User{ID: "u1", Email: "u1@example.com"}})
	if _, err := hub.SignIn(context.Background(), "u1@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	item, err := hub.AddPantryItem(context.Background(), PantryItemInput{
		Name:     "Milk",
		Quantity: 2,
		Category: models.CategoryDairy,
	})
	if err != nil {
		t.Fatalf("AddPantryItem: %v", err)
	}
	if item.ID == "" {
		t.Fatal("persisted item has no ID")
	}

	waitFor(t, func() bool {
		items := hub.PantryItems()
		return len(items) == 1 && items[0].ID == item.ID
	}, "pantry cache never caught up with the stream")

	if err := hub.DeletePantryItem(context.Background(), *item); err != nil {
		t.Fatalf("DeletePantryItem: %v", err)
	}
	waitFor(t, func() bool {
		return len(hub.PantryItems()) == 0
	}, "pantry cache never applied the removed event")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}
