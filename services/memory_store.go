package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

type memoryCollection struct {
	order []string
	docs  map[string]map[string]interface{}
}

func newMemoryCollection() *memoryCollection {
	return &memoryCollection{docs: make(map[string]map[string]interface{})}
}

func (c *memoryCollection) index(id string) int {
	for i, d := range c.order {
		if d == id {
			return i
		}
	}
	return -1
}

// MemoryStore is an in-process RemoteStore. It backs dev mode when no
// Firestore credentials are configured, and doubles as the test store. Writes
// synthesize the same change batches a real stream would deliver.
type MemoryStore struct {
	mu       sync.Mutex
	pantry   *memoryCollection
	shopping *memoryCollection
	pantryLn map[string][]chan []DocChange
	shopLn   map[string][]chan []DocChange
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pantry:   newMemoryCollection(),
		shopping: newMemoryCollection(),
		pantryLn: make(map[string][]chan []DocChange),
		shopLn:   make(map[string][]chan []DocChange),
	}
}

func (s *MemoryStore) AddPantryItem(ctx context.Context, item models.PantryItem) (string, error) {
	return s.add(s.pantry, s.pantryLn, pantryFields(item), item.UserID)
}

func (s *MemoryStore) UpdatePantryItem(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.update(s.pantry, s.pantryLn, id, fields)
}

func (s *MemoryStore) DeletePantryItem(ctx context.Context, id string) error {
	return s.remove(s.pantry, s.pantryLn, id)
}

func (s *MemoryStore) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (string, error) {
	return s.add(s.shopping, s.shopLn, shoppingFields(item), item.UserID)
}

func (s *MemoryStore) UpdateShoppingItem(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.update(s.shopping, s.shopLn, id, fields)
}

func (s *MemoryStore) DeleteShoppingItem(ctx context.Context, id string) error {
	return s.remove(s.shopping, s.shopLn, id)
}

func (s *MemoryStore) ListenPantry(ctx context.Context, userID string) (<-chan []DocChange, error) {
	return s.listen(ctx, s.pantry, s.pantryLn, userID)
}

func (s *MemoryStore) ListenShopping(ctx context.Context, userID string) (<-chan []DocChange, error) {
	return s.listen(ctx, s.shopping, s.shopLn, userID)
}

func (s *MemoryStore) add(col *memoryCollection, listeners map[string][]chan []DocChange, fields map[string]interface{}, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	col.docs[id] = fields
	col.order = append(col.order, id)
	s.notifyLocked(listeners, userID, []DocChange{{
		Kind:     ChangeAdded,
		ID:       id,
		Data:     cloneFields(fields),
		OldIndex: -1,
		NewIndex: len(col.order) - 1,
	}})
	return id, nil
}

func (s *MemoryStore) update(col *memoryCollection, listeners map[string][]chan []DocChange, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := col.docs[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		doc[k] = v
	}
	idx := col.index(id)
	userID, _ := doc["userId"].(string)
	s.notifyLocked(listeners, userID, []DocChange{{
		Kind:     ChangeModified,
		ID:       id,
		Data:     cloneFields(doc),
		OldIndex: idx,
		NewIndex: idx,
	}})
	return nil
}

func (s *MemoryStore) remove(col *memoryCollection, listeners map[string][]chan []DocChange, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := col.docs[id]
	if !ok {
		return nil
	}
	idx := col.index(id)
	delete(col.docs, id)
	col.order = append(col.order[:idx], col.order[idx+1:]...)
	userID, _ := doc["userId"].(string)
	s.notifyLocked(listeners, userID, []DocChange{{
		Kind:     ChangeRemoved,
		ID:       id,
		Data:     cloneFields(doc),
		OldIndex: idx,
		NewIndex: -1,
	}})
	return nil
}

func (s *MemoryStore) listen(ctx context.Context, col *memoryCollection, listeners map[string][]chan []DocChange, userID string) (<-chan []DocChange, error) {
	s.mu.Lock()
	ch := make(chan []DocChange, 16)
	listeners[userID] = append(listeners[userID], ch)

	// Initial snapshot: everything the user already has, as added changes.
	var initial []DocChange
	for i, id := range col.order {
		doc := col.docs[id]
		if uid, _ := doc["userId"].(string); uid != userID {
			continue
		}
		initial = append(initial, DocChange{
			Kind:     ChangeAdded,
			ID:       id,
			Data:     cloneFields(doc),
			OldIndex: -1,
			NewIndex: i,
		})
	}
	if len(initial) > 0 {
		ch <- initial
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		chans := listeners[userID]
		for i, c := range chans {
			if c == ch {
				listeners[userID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

func (s *MemoryStore) notifyLocked(listeners map[string][]chan []DocChange, userID string, batch []DocChange) {
	for _, ch := range listeners[userID] {
		select {
		case ch <- batch:
		default:
			// Listener is not draining; drop rather than block writers.
		}
	}
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
