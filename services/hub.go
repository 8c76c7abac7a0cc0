package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// ErrNoSession means a write was attempted with no signed-in user. Documents
// are scoped by userId, so a write without one would be invisible to every
// change stream.
var ErrNoSession = errors.New("no authenticated session")

type ListenerType int

const (
	ListenerPantry ListenerType = iota
	ListenerShopping
	ListenerAuth
	ListenerLikedRecipes
	ListenerAll
)

// Observer is one registered consumer of hub notifications. Kind decides
// which callbacks fire; nil callbacks are skipped. Callbacks run on the hub's
// notification path and must not call back into the hub.
type Observer struct {
	Kind                 ListenerType
	OnPantryChange       func(items []models.PantryItem)
	OnShoppingChange     func(items []models.ShoppingItem)
	OnAuthChange         func(user *models.User)
	OnLikedRecipesChange func(recipes []models.LikedRecipe)
}

func (o *Observer) wants(t ListenerType) bool {
	return o.Kind == t || o.Kind == ListenerAll
}

// PantryItemInput carries everything needed to create a pantry item. The
// nutrition fields are only set on the barcode-scan path.
type PantryItemInput struct {
	Name           string
	Quantity       int
	Calories       int
	Expiry         time.Time
	Category       models.FoodCategory
	Barcode        string
	Fat            float64
	Carbs          float64
	Protein        float64
	NutritionGrade string
}

// Hub owns the in-memory pantry and shopping caches for the signed-in user,
// applies remote change-stream batches to them, and fans notifications out to
// registered observers filtered by interest. All cache mutation and observer
// notification is serialized under one mutex, so observers see changes in
// application order. Observers always receive copies, never the live slices.
type Hub struct {
	mu        sync.Mutex
	store     RemoteStore
	auth      Authenticator
	observers map[*Observer]struct{}

	pantry   []models.PantryItem
	shopping []models.ShoppingItem
	liked    []models.LikedRecipe

	currentUser   *models.User
	cancelStreams context.CancelFunc
}

func NewHub(store RemoteStore, auth Authenticator) *Hub {
	return &Hub{
		store:     store,
		auth:      auth,
		observers: make(map[*Observer]struct{}),
	}
}

// AddObserver registers an observer and immediately delivers the current
// snapshot(s) matching its interest, even if nothing has changed yet.
// Registering the same observer twice is a no-op.
func (h *Hub) AddObserver(o *Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.observers[o]; ok {
		return
	}
	h.observers[o] = struct{}{}

	if o.wants(ListenerPantry) && o.OnPantryChange != nil {
		o.OnPantryChange(copyPantry(h.pantry))
	}
	if o.wants(ListenerShopping) && o.OnShoppingChange != nil {
		o.OnShoppingChange(copyShopping(h.shopping))
	}
	if o.wants(ListenerAuth) && o.OnAuthChange != nil {
		o.OnAuthChange(copyUser(h.currentUser))
	}
	if o.wants(ListenerLikedRecipes) && o.OnLikedRecipesChange != nil {
		o.OnLikedRecipesChange(copyLiked(h.liked))
	}
}

func (h *Hub) RemoveObserver(o *Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.observers, o)
}

// PantryItems returns a copy of the current pantry cache.
func (h *Hub) PantryItems() []models.PantryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return copyPantry(h.pantry)
}

// ShoppingItems returns a copy of the current shopping cache.
func (h *Hub) ShoppingItems() []models.ShoppingItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return copyShopping(h.shopping)
}

// CurrentUserID returns the signed-in user's identifier, if any.
func (h *Hub) CurrentUserID() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.currentUser == nil {
		return "", false
	}
	return h.currentUser.ID, true
}

// FindPantryItemByBarcode does a linear search of the cache, the same
// lookup the merge-on-add rule uses.
func (h *Hub) FindPantryItemByBarcode(barcode string) (models.PantryItem, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, item := range h.pantry {
		if item.Barcode != "" && item.Barcode == barcode {
			return item, true
		}
	}
	return models.PantryItem{}, false
}

func (h *Hub) PantryItemByID(id string) (models.PantryItem, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, item := range h.pantry {
		if item.ID == id {
			return item, true
		}
	}
	return models.PantryItem{}, false
}

func (h *Hub) ShoppingItemByID(id string) (models.ShoppingItem, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, item := range h.shopping {
		if item.ID == id {
			return item, true
		}
	}
	return models.ShoppingItem{}, false
}

// AddPantryItem creates a pantry item for the current user. If the input has
// a non-empty barcode matching a cached item, that item's quantity is bumped
// by the input quantity instead and the existing item is returned; the cache
// update is optimistic and is not rolled back if the remote write fails (the
// next change-stream delivery for the document is authoritative either way).
// The lookup and increment happen under the hub mutex, so two in-process adds
// of the same barcode cannot both miss. Returns ErrNoSession when no user is
// signed in.
func (h *Hub) AddPantryItem(ctx context.Context, in PantryItemInput) (*models.PantryItem, error) {
	h.mu.Lock()
	if h.currentUser == nil {
		h.mu.Unlock()
		return nil, ErrNoSession
	}
	if in.Barcode != "" {
		for i := range h.pantry {
			if h.pantry[i].Barcode == in.Barcode {
				h.pantry[i].Quantity += in.Quantity
				merged := h.pantry[i]
				h.broadcastPantryLocked()
				h.mu.Unlock()

				if err := h.store.UpdatePantryItem(ctx, merged.ID, map[string]interface{}{
					"quantity": merged.Quantity,
				}); err != nil {
					log.Printf("pantry: quantity update for %s failed: %v", merged.ID, err)
				}
				return &merged, nil
			}
		}
	}

	item := models.PantryItem{
		Name:           in.Name,
		Quantity:       in.Quantity,
		Calories:       in.Calories,
		Expiry:         in.Expiry,
		Category:       in.Category,
		Barcode:        in.Barcode,
		Fat:            in.Fat,
		Carbs:          in.Carbs,
		Protein:        in.Protein,
		NutritionGrade: in.NutritionGrade,
		UserID:         h.currentUser.ID,
	}
	h.mu.Unlock()

	id, err := h.store.AddPantryItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return &item, nil
}

// DeletePantryItem removes the item from the remote store. The cache catches
// up via the subsequent change-stream removed event, not synchronously.
func (h *Hub) DeletePantryItem(ctx context.Context, item models.PantryItem) error {
	if item.ID == "" {
		return nil
	}
	return h.store.DeletePantryItem(ctx, item.ID)
}

// UpdatePantryQuantity sets an item's quantity in the remote store.
func (h *Hub) UpdatePantryQuantity(ctx context.Context, item models.PantryItem, quantity int) error {
	if item.ID == "" {
		return nil
	}
	return h.store.UpdatePantryItem(ctx, item.ID, map[string]interface{}{
		"quantity": quantity,
	})
}

// AddShoppingItem persists a shopping item for the current user. There is no
// merge rule for shopping items; every add creates a new entity. Returns
// ErrNoSession when no user is signed in.
func (h *Hub) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (*models.ShoppingItem, error) {
	h.mu.Lock()
	if h.currentUser == nil {
		h.mu.Unlock()
		return nil, ErrNoSession
	}
	item.UserID = h.currentUser.ID
	h.mu.Unlock()

	id, err := h.store.AddShoppingItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return &item, nil
}

func (h *Hub) DeleteShoppingItem(ctx context.Context, item models.ShoppingItem) error {
	if item.ID == "" {
		return nil
	}
	return h.store.DeleteShoppingItem(ctx, item.ID)
}

// SetShoppingPurchased flips the purchased flag in the remote store.
func (h *Hub) SetShoppingPurchased(ctx context.Context, item models.ShoppingItem, purchased bool) error {
	if item.ID == "" {
		return nil
	}
	return h.store.UpdateShoppingItem(ctx, item.ID, map[string]interface{}{
		"isPurchased": purchased,
	})
}

// ApplyPantryChanges applies one change-stream batch to the pantry cache and
// notifies pantry observers with the full resulting snapshot. Changes are
// applied by document ID rather than by the delivered index hints, which
// keeps duplicate or out-of-order delivery from corrupting the cache.
func (h *Hub) ApplyPantryChanges(batch []DocChange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range batch {
		switch c.Kind {
		case ChangeAdded, ChangeModified:
			item := models.PantryItemFromDoc(c.ID, c.Data)
			if i := pantryIndex(h.pantry, c.ID); i >= 0 {
				h.pantry[i] = item
			} else {
				h.pantry = append(h.pantry, item)
			}
		case ChangeRemoved:
			if i := pantryIndex(h.pantry, c.ID); i >= 0 {
				h.pantry = append(h.pantry[:i], h.pantry[i+1:]...)
			}
		}
	}
	h.broadcastPantryLocked()
}

// ApplyShoppingChanges is the shopping-collection counterpart of
// ApplyPantryChanges.
func (h *Hub) ApplyShoppingChanges(batch []DocChange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range batch {
		switch c.Kind {
		case ChangeAdded, ChangeModified:
			item := models.ShoppingItemFromDoc(c.ID, c.Data)
			if i := shoppingIndex(h.shopping, c.ID); i >= 0 {
				h.shopping[i] = item
			} else {
				h.shopping = append(h.shopping, item)
			}
		case ChangeRemoved:
			if i := shoppingIndex(h.shopping, c.ID); i >= 0 {
				h.shopping = append(h.shopping[:i], h.shopping[i+1:]...)
			}
		}
	}
	h.broadcastShoppingLocked()
}

// BroadcastLikedRecipes is called by the local liked-recipes store after each
// mutation. The hub keeps the last slice so newly registered observers get an
// immediate snapshot.
func (h *Hub) BroadcastLikedRecipes(recipes []models.LikedRecipe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liked = copyLiked(recipes)
	for o := range h.observers {
		if o.wants(ListenerLikedRecipes) && o.OnLikedRecipesChange != nil {
			o.OnLikedRecipesChange(copyLiked(h.liked))
		}
	}
}

// SignUp creates an account with the identity provider and, on success,
// signs the user in (attaching both collection streams).
func (h *Hub) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	user, err := h.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	h.startSession(ctx, user)
	return user, nil
}

// SignIn authenticates and, on success, sets the current user, attaches the
// per-user pantry and shopping streams, and broadcasts the new auth state.
// On failure the current user stays unset and no streams are attached.
func (h *Hub) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := h.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	h.startSession(ctx, user)
	return user, nil
}

func (h *Hub) startSession(ctx context.Context, user *models.User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelStreams != nil {
		h.cancelStreams()
		h.cancelStreams = nil
	}
	h.currentUser = &models.User{ID: user.ID, Email: user.Email}
	h.attachStreamsLocked()

	for o := range h.observers {
		if o.wants(ListenerAuth) && o.OnAuthChange != nil {
			o.OnAuthChange(copyUser(h.currentUser))
		}
	}
}

// Resume re-attaches the streams for an already-authenticated user, e.g. when
// the service restarts with a still-valid session token.
func (h *Hub) Resume(user *models.User) {
	h.startSession(context.Background(), user)
}

func (h *Hub) attachStreamsLocked() {
	userID := h.currentUser.ID
	ctx, cancel := context.WithCancel(context.Background())
	h.cancelStreams = cancel

	pantryCh, err := h.store.ListenPantry(ctx, userID)
	if err != nil {
		log.Printf("pantry: listen failed: %v", err)
	} else {
		go func() {
			for batch := range pantryCh {
				h.ApplyPantryChanges(batch)
			}
		}()
	}

	shoppingCh, err := h.store.ListenShopping(ctx, userID)
	if err != nil {
		log.Printf("shopping: listen failed: %v", err)
	} else {
		go func() {
			for batch := range shoppingCh {
				h.ApplyShoppingChanges(batch)
			}
		}()
	}
}

// SignOut detaches both streams, clears the current user and both caches,
// and broadcasts a nil user plus empty snapshots to matching observers.
// Liked recipes are local-only and are not touched.
func (h *Hub) SignOut() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelStreams != nil {
		h.cancelStreams()
		h.cancelStreams = nil
	}
	h.currentUser = nil
	h.pantry = nil
	h.shopping = nil

	for o := range h.observers {
		if o.wants(ListenerAuth) && o.OnAuthChange != nil {
			o.OnAuthChange(nil)
		}
		if o.wants(ListenerPantry) && o.OnPantryChange != nil {
			o.OnPantryChange([]models.PantryItem{})
		}
		if o.wants(ListenerShopping) && o.OnShoppingChange != nil {
			o.OnShoppingChange([]models.ShoppingItem{})
		}
	}
}

func (h *Hub) broadcastPantryLocked() {
	for o := range h.observers {
		if o.wants(ListenerPantry) && o.OnPantryChange != nil {
			o.OnPantryChange(copyPantry(h.pantry))
		}
	}
}

func (h *Hub) broadcastShoppingLocked() {
	for o := range h.observers {
		if o.wants(ListenerShopping) && o.OnShoppingChange != nil {
			o.OnShoppingChange(copyShopping(h.shopping))
		}
	}
}

func pantryIndex(items []models.PantryItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func shoppingIndex(items []models.ShoppingItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func copyPantry(items []models.PantryItem) []models.PantryItem {
	out := make([]models.PantryItem, len(items))
	copy(out, items)
	return out
}

func copyShopping(items []models.ShoppingItem) []models.ShoppingItem {
	out := make([]models.ShoppingItem, len(items))
	copy(out, items)
	return out
}

func copyLiked(recipes []models.LikedRecipe) []models.LikedRecipe {
	out := make([]models.LikedRecipe, len(recipes))
	copy(out, recipes)
	return out
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
