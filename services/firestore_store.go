package services

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

const (
	pantryCollection   = "pantryItems"
	shoppingCollection = "shoppingItems"
)

// FirestoreStore is the production RemoteStore, backed by the two Firestore
// collections the mobile clients write to. Listen streams ride on Firestore's
// snapshot listener; a failed stream closes the channel and is not retried
// here (the SDK reconnects transient drops on its own).
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) AddPantryItem(ctx context.Context, item models.PantryItem) (string, error) {
	ref, _, err := s.client.Collection(pantryCollection).Add(ctx, pantryFields(item))
	if err != nil {
		return "", fmt.Errorf("failed to add pantry item: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) UpdatePantryItem(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := s.client.Collection(pantryCollection).Doc(id).Update(ctx, fieldUpdates(fields))
	if err != nil {
		return fmt.Errorf("failed to update pantry item %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) DeletePantryItem(ctx context.Context, id string) error {
	_, err := s.client.Collection(pantryCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (string, error) {
	ref, _, err := s.client.Collection(shoppingCollection).Add(ctx, shoppingFields(item))
	if err != nil {
		return "", fmt.Errorf("failed to add shopping item: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) UpdateShoppingItem(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := s.client.Collection(shoppingCollection).Doc(id).Update(ctx, fieldUpdates(fields))
	if err != nil {
		return fmt.Errorf("failed to update shopping item %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteShoppingItem(ctx context.Context, id string) error {
	_, err := s.client.Collection(shoppingCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) ListenPantry(ctx context.Context, userID string) (<-chan []DocChange, error) {
	return s.listen(ctx, pantryCollection, userID), nil
}

func (s *FirestoreStore) ListenShopping(ctx context.Context, userID string) (<-chan []DocChange, error) {
	return s.listen(ctx, shoppingCollection, userID), nil
}

func (s *FirestoreStore) listen(ctx context.Context, collection, userID string) <-chan []DocChange {
	ch := make(chan []DocChange, 16)
	iter := s.client.Collection(collection).
		Where("userId", "==", userID).
		Snapshots(ctx)

	go func() {
		defer close(ch)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("%s: snapshot stream ended: %v", collection, err)
				}
				return
			}
			batch := make([]DocChange, 0, len(snap.Changes))
			for _, c := range snap.Changes {
				batch = append(batch, DocChange{
					Kind:     changeKind(c.Kind),
					ID:       c.Doc.Ref.ID,
					Data:     c.Doc.Data(),
					OldIndex: c.OldIndex,
					NewIndex: c.NewIndex,
				})
			}
			if len(batch) == 0 {
				continue
			}
			select {
			case ch <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func changeKind(k firestore.DocumentChangeKind) ChangeKind {
	switch k {
	case firestore.DocumentModified:
		return ChangeModified
	case firestore.DocumentRemoved:
		return ChangeRemoved
	default:
		return ChangeAdded
	}
}

func fieldUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}
