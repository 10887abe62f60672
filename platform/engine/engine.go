package engine

import (
	"fmt"
	"sync"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/platform/board"
)

const (
	StartingCoins = 100000
	StartingDice  = 5
)

// PurchaseDecision is the player's answer when landing on an unowned property.
type PurchaseDecision int

const (
	Buy PurchaseDecision = iota
	Skip
	Cancel
)

// Rand is the engine's randomness source. *math/rand.Rand satisfies it; tests
// substitute a scripted one.
type Rand interface {
	Intn(n int) int
}

// Engine resolves turns against per-player persisted state. All randomness
// flows through the injected Rand, so resolution is deterministic given its
// draws. ResolveTurn and GrantDice are single-writer per (room, user).
type Engine struct {
	catalogs board.Catalogs
	players  PlayerStore
	drinks   DrinkLog
	marker   GrantMarker

	randMu sync.Mutex
	rng    Rand

	locks lockMap
}

func NewEngine(catalogs board.Catalogs, players PlayerStore, drinks DrinkLog, marker GrantMarker, rng Rand) *Engine {
	return &Engine{
		catalogs: catalogs,
		players:  players,
		drinks:   drinks,
		marker:   marker,
		rng:      rng,
	}
}

func (e *Engine) intn(n int) int {
	e.randMu.Lock()
	defer e.randMu.Unlock()
	return e.rng.Intn(n)
}

// RollDie draws the dice value for a turn. Kept separate from resolution so
// the resolved value can be echoed to the player before choices are made.
func (e *Engine) RollDie() int {
	return e.intn(6) + 1
}

// InitializeEpoch regenerates the board for one player and resets their
// state: a fresh injective property placement, fresh event templates on every
// position, starting coins and dice, no owned properties. Called on first
// run, on an explicit new game, and after bankruptcy.
func (e *Engine) InitializeEpoch(roomId, userId string) (models.PlayerState, error) {
	lock := e.locks.get(roomId + "." + userId)
	lock.Lock()
	defer lock.Unlock()
	return e.initializeEpochLocked(roomId, userId)
}

func (e *Engine) initializeEpochLocked(roomId, userId string) (models.PlayerState, error) {
	state := models.PlayerState{
		Coins:       StartingCoins,
		Position:    0,
		DiceLeft:    StartingDice,
		Assignments: e.drawAssignments(),
		Events:      e.drawEvents(),
	}
	if err := e.players.Save(roomId, userId, state); err != nil {
		return models.PlayerState{}, err
	}
	return state, nil
}

// drawAssignments places each catalog property on a uniformly random unused
// position, in catalog order. The result is injective by construction; any
// positions left over stay event-only.
func (e *Engine) drawAssignments() map[string]int {
	free := make([]int, board.BoardSize)
	for i := range free {
		free[i] = i
	}
	assignments := make(map[string]int, len(e.catalogs.Properties))
	for _, p := range e.catalogs.Properties {
		if len(free) == 0 {
			break
		}
		i := e.intn(len(free))
		assignments[p.Id] = free[i]
		free = append(free[:i], free[i+1:]...)
	}
	return assignments
}

// drawEvents assigns a template to every position, with replacement. Property
// tiles carry one too; it is simply never consulted.
func (e *Engine) drawEvents() []int {
	events := make([]int, board.BoardSize)
	for i := range events {
		events[i] = e.intn(len(e.catalogs.Events))
	}
	return events
}

// LoadOrInit returns the player's current state, creating a fresh epoch on
// first contact with this room.
func (e *Engine) LoadOrInit(roomId, userId string) (models.PlayerState, error) {
	lock := e.locks.get(roomId + "." + userId)
	lock.Lock()
	defer lock.Unlock()
	state, found, err := e.players.Load(roomId, userId)
	if err != nil {
		return models.PlayerState{}, err
	}
	if !found {
		return e.initializeEpochLocked(roomId, userId)
	}
	return state, nil
}

// ResolveTurn applies one complete turn. On bankruptcy it reports GameOver
// and persists nothing; the prior state stays authoritative until the caller
// resets the epoch. Otherwise exactly one state write happens and exactly one
// die is consumed.
func (e *Engine) ResolveTurn(roomId, userId string, dice int, decision PurchaseDecision, eventChoice int) (models.TurnResult, error) {
	lock := e.locks.get(roomId + "." + userId)
	lock.Lock()
	defer lock.Unlock()

	if dice < 1 || dice > 6 {
		return models.TurnResult{}, ErrInvalidDice
	}

	state, found, err := e.players.Load(roomId, userId)
	if err != nil {
		return models.TurnResult{}, err
	}
	if !found {
		if state, err = e.initializeEpochLocked(roomId, userId); err != nil {
			return models.TurnResult{}, err
		}
	}
	if state.DiceLeft <= 0 {
		return models.TurnResult{}, ErrNoDiceLeft
	}

	newPos := (state.Position + dice) % board.BoardSize

	baseDelta := 0
	desc := ""
	owned := state.Properties

	if propId, ok := propertyAt(state.Assignments, newPos); ok {
		prop, perr := e.catalogs.PropertyById(propId)
		switch {
		case perr != nil:
			desc = "Nothing happens."
		case state.Owns(propId):
			desc = fmt.Sprintf("You visited your own %s.", prop.Name)
		case decision == Buy && state.Coins >= prop.Price:
			baseDelta = -prop.Price
			owned = addOwned(owned, propId)
			desc = fmt.Sprintf("You bought %s for %d coins.", prop.Name, prop.Price)
		case decision == Buy:
			desc = fmt.Sprintf("Not enough coins to buy %s.", prop.Name)
		default:
			desc = fmt.Sprintf("You passed on %s.", prop.Name)
		}
	} else {
		baseDelta, desc = e.resolveEvent(state.Events, newPos, eventChoice)
	}

	income := 0
	for _, id := range owned {
		if p, perr := e.catalogs.PropertyById(id); perr == nil {
			income += p.IncomePerTurn
		}
	}

	totalDelta := baseDelta + income
	prospective := state.Coins + totalDelta

	if prospective < 0 {
		return models.TurnResult{
			DiceValue:   dice,
			NewPosition: newPos,
			Description: fmt.Sprintf("%s You are down to %d coins. Game over.", desc, prospective),
			CoinDelta:   totalDelta,
			IsGameOver:  true,
		}, nil
	}

	state.Coins = prospective
	state.Position = newPos
	state.DiceLeft--
	state.Properties = owned
	if err := e.players.Save(roomId, userId, state); err != nil {
		return models.TurnResult{}, err
	}

	return models.TurnResult{
		DiceValue:   dice,
		NewPosition: newPos,
		Description: desc,
		CoinDelta:   totalDelta,
	}, nil
}

// resolveEvent resolves the template on the landed tile. A missing or
// malformed template (fewer than two choices) is a guaranteed no-op, never an
// error. An eventChoice other than 1 falls back to choice 2, the same default
// a dismissed prompt gets.
func (e *Engine) resolveEvent(events []int, pos int, eventChoice int) (int, string) {
	if pos >= len(events) {
		return 0, "Nothing happens."
	}
	idx := events[pos]
	if idx < 0 || idx >= len(e.catalogs.Events) {
		return 0, "Nothing happens."
	}
	tpl := e.catalogs.Events[idx]
	if len(tpl.Choices) < 2 {
		return 0, "Nothing happens."
	}
	choice := tpl.Choices[1]
	if eventChoice == 1 {
		choice = tpl.Choices[0]
	}
	if e.intn(100) < choice.SuccessRate {
		return choice.SuccessDelta, fmt.Sprintf("%s %s", tpl.Title, choice.SuccessDesc)
	}
	return choice.FailureDelta, fmt.Sprintf("%s %s", tpl.Title, choice.FailureDesc)
}

// GrantDice adds dice to a player's pool, typically the daily grant. It is
// the only writer besides ResolveTurn and takes the same per-player lock.
func (e *Engine) GrantDice(roomId, userId string, n int) (models.PlayerState, error) {
	lock := e.locks.get(roomId + "." + userId)
	lock.Lock()
	defer lock.Unlock()

	state, found, err := e.players.Load(roomId, userId)
	if err != nil {
		return models.PlayerState{}, err
	}
	if !found {
		if state, err = e.initializeEpochLocked(roomId, userId); err != nil {
			return models.PlayerState{}, err
		}
	}
	if n <= 0 {
		return state, nil
	}
	state.DiceLeft += n
	if err := e.players.Save(roomId, userId, state); err != nil {
		return models.PlayerState{}, err
	}
	return state, nil
}

func propertyAt(assignments map[string]int, pos int) (string, bool) {
	for id, p := range assignments {
		if p == pos {
			return id, true
		}
	}
	return "", false
}

func addOwned(owned []string, id string) []string {
	for _, o := range owned {
		if o == id {
			return owned
		}
	}
	return append(owned, id)
}
