// Package preferences keeps the single favorite city in local key-value storage
package preferences

import (
	"context"
	"log"
	"time"
)

// FavoriteCityKey is the fixed storage key of the favorite city
const FavoriteCityKey = "favoriteCityKey"

const storageTimeout = 2 * time.Second

// KeyValueStore is the flat storage the favorite city is kept in
type KeyValueStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key string, value string) error
	DeletePreference(ctx context.Context, key string) error
}

// FavoriteCityStore gets, sets and clears the favorite city.
// Storage failures are logged and swallowed.
type FavoriteCityStore struct {
	kv KeyValueStore
}

// NewFavoriteCityStore is constructor for the favorite city store
func NewFavoriteCityStore(kv KeyValueStore) *FavoriteCityStore {
	return &FavoriteCityStore{kv: kv}
}

// Save overwrites the favorite city
func (f *FavoriteCityStore) Save(city string) {

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := f.kv.SetPreference(ctx, FavoriteCityKey, city); err != nil {
		log.Printf("[WARN] could not save favorite city, %v", err)
		return
	}
	log.Printf("[INFO] saved favorite city: %s", city)
}

// Get returns the favorite city; ok is false when none is stored or storage failed
func (f *FavoriteCityStore) Get() (city string, ok bool) {

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	city, ok, err := f.kv.GetPreference(ctx, FavoriteCityKey)
	if err != nil {
		log.Printf("[WARN] could not read favorite city, %v", err)
		return "", false
	}
	return city, ok
}

// Clear removes the favorite city
func (f *FavoriteCityStore) Clear() {

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := f.kv.DeletePreference(ctx, FavoriteCityKey); err != nil {
		log.Printf("[WARN] could not clear favorite city, %v", err)
		return
	}
	log.Println("[INFO] cleared favorite city")
}
