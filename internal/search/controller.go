// Package search drives a city weather search through its states
package search

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harshitrajsinha/city-weather-go/internal/preferences"
	"github.com/harshitrajsinha/city-weather-go/internal/store"
)

// Observer receives every new state
type Observer func(State)

// Controller owns the search state machine.
//
// Every Submit and Reset starts a new generation. A fetch only moves the
// state if its generation is still current when it completes, so the last
// submitted search wins; superseded fetches run to completion and are dropped.
//
// Transitions and observer calls are serialized. Observers run while the
// controller is busy notifying and must not call Submit or Reset themselves.
type Controller struct {
	reporter  store.WeatherReporter
	favorites *preferences.FavoriteCityStore

	notifyMu sync.Mutex

	mu                sync.Mutex
	state             State
	generation        uint64
	lastValidatedCity string
	observers         map[uuid.UUID]Observer
	observerOrder     []uuid.UUID

	inflight sync.WaitGroup
}

// NewController is the constructor used for dependency injection into the search flow
func NewController(reporter store.WeatherReporter, favorites *preferences.FavoriteCityStore) *Controller {
	return &Controller{
		reporter:  reporter,
		favorites: favorites,
		state:     Idle(),
		observers: make(map[uuid.UUID]Observer),
	}
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers an observer and returns the function that removes it
func (c *Controller) Subscribe(observer Observer) (unsubscribe func()) {
	id := uuid.New()

	c.mu.Lock()
	c.observers[id] = observer
	c.observerOrder = append(c.observerOrder, id)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.observers[id]; !ok {
			return
		}
		delete(c.observers, id)
		for i, registered := range c.observerOrder {
			if registered == id {
				c.observerOrder = append(c.observerOrder[:i], c.observerOrder[i+1:]...)
				break
			}
		}
	}
}

// Submit starts a search for city. A blank city fails at once without a fetch.
func (c *Controller) Submit(ctx context.Context, city string) {

	trimmedCity := strings.TrimSpace(city)
	if trimmedCity == "" {
		c.advance(Failed(store.MessageInvalidCity), nil)
		return
	}

	gen := c.advance(Loading(), nil)
	fetchID := uuid.New()

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		log.Printf("[INFO] fetch %s: requesting weather for %q", fetchID, trimmedCity)
		record, err := c.reporter.GetCurrentWeatherReport(ctx, trimmedCity)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", fetchID, err)
			if !c.complete(gen, Failed(store.MessageForError(err)), nil) {
				log.Printf("[DEBUG] fetch %s: superseded, result dropped", fetchID)
			}
			return
		}

		applied := c.complete(gen, Loaded(record), func() {
			c.lastValidatedCity = trimmedCity
		})
		if !applied {
			log.Printf("[DEBUG] fetch %s: superseded, result dropped", fetchID)
		}
	}()
}

// Reset returns to Idle and forgets the last validated city
func (c *Controller) Reset() {
	c.advance(Idle(), func() {
		c.lastValidatedCity = ""
	})
}

// Wait blocks until every fetch started so far has completed
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// CanSaveFavorite reports whether a city has been validated since creation or the last reset
func (c *Controller) CanSaveFavorite() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastValidatedCity != ""
}

// SaveFavorite stores the last validated city; it returns false and writes nothing if there is none
func (c *Controller) SaveFavorite() bool {
	c.mu.Lock()
	city := c.lastValidatedCity
	c.mu.Unlock()

	if city == "" {
		return false
	}
	c.favorites.Save(city)
	return true
}

// FavoriteCity returns the stored favorite city, if any
func (c *Controller) FavoriteCity() (string, bool) {
	return c.favorites.Get()
}

// ClearFavorite removes the stored favorite city
func (c *Controller) ClearFavorite() {
	c.favorites.Clear()
}

// advance starts a new generation, moves to next and notifies observers
func (c *Controller) advance(next State, onApply func()) uint64 {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.generation++
	gen := c.generation
	observers := c.apply(next, onApply)
	c.mu.Unlock()

	notify(observers, next)
	return gen
}

// complete moves to next only if gen is still the current generation
func (c *Controller) complete(gen uint64, next State, onApply func()) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return false
	}
	observers := c.apply(next, onApply)
	c.mu.Unlock()

	notify(observers, next)
	return true
}

// apply must be called with mu held
func (c *Controller) apply(next State, onApply func()) []Observer {
	c.state = next
	if onApply != nil {
		onApply()
	}

	observers := make([]Observer, 0, len(c.observerOrder))
	for _, id := range c.observerOrder {
		observers = append(observers, c.observers[id])
	}
	return observers
}

func notify(observers []Observer, state State) {
	for _, observer := range observers {
		observer(state)
	}
}
