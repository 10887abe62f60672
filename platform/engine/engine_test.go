package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/platform/board"
)

type fakeStore struct {
	states map[string]models.PlayerState
	saves  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[string]models.PlayerState{}}
}

func (f *fakeStore) key(roomId, userId string) string { return roomId + "." + userId }

func (f *fakeStore) Load(roomId, userId string) (models.PlayerState, bool, error) {
	st, ok := f.states[f.key(roomId, userId)]
	return st, ok, nil
}

func (f *fakeStore) Save(roomId, userId string, st models.PlayerState) error {
	f.saves++
	f.states[f.key(roomId, userId)] = st
	return nil
}

// scriptRand replays a fixed list of draws, then zeroes.
type scriptRand struct {
	values []int
	i      int
}

func (r *scriptRand) Intn(n int) int {
	if r.i < len(r.values) {
		v := r.values[r.i] % n
		r.i++
		return v
	}
	return 0
}

func testCatalogs() board.Catalogs {
	return board.Catalogs{
		Properties: []models.PropertyType{
			{Id: "well", Name: "Village Well", Price: 30000, IncomePerTurn: 1500},
			{Id: "spring", Name: "Mountain Spring", Price: 45000, IncomePerTurn: 2500},
		},
		Events: []models.EventTemplate{
			{
				Title:       "Rain Barrel Venture",
				Description: "A neighbor offers you a stake.",
				Choices: []models.EventChoice{
					{Label: "Invest big", SuccessDesc: "SUCCESS. Sold out.", FailureDesc: "The barrels leak.", SuccessDelta: 40000, FailureDelta: -60000, SuccessRate: 40},
					{Label: "Invest small", SuccessDesc: "SUCCESS. Safe return.", FailureDesc: "Slow sales.", SuccessDelta: 15000, FailureDelta: -5000, SuccessRate: 75},
				},
			},
			{
				Title:       "Broken Template",
				Description: "Only one choice survived a bad deploy.",
				Choices: []models.EventChoice{
					{Label: "Only", SuccessDelta: 1000, FailureDelta: -1000, SuccessRate: 50},
				},
			},
		},
	}
}

func newTestEngine(store *fakeStore, draws ...int) *Engine {
	return NewEngine(testCatalogs(), store, nil, nil, &scriptRand{values: draws})
}

// eventOnlyState builds a state with no properties placed anywhere, so every
// tile resolves as an event tile using template 0.
func eventOnlyState(coins, pos, dice int) models.PlayerState {
	return models.PlayerState{
		Coins:       coins,
		Position:    pos,
		DiceLeft:    dice,
		Assignments: map[string]int{},
		Events:      make([]int, board.BoardSize),
	}
}

func TestMovementWrapsAroundBoard(t *testing.T) {
	for p := 0; p < board.BoardSize; p++ {
		for d := 1; d <= 6; d++ {
			store := newFakeStore()
			store.states["r.u"] = eventOnlyState(1000000, p, 5)
			// High success draw forces failure path; delta is irrelevant here.
			eng := newTestEngine(store, 99)

			res, err := eng.ResolveTurn("r", "u", d, Skip, 2)
			require.NoError(t, err)
			assert.Equal(t, (p+d)%board.BoardSize, res.NewPosition)
			assert.GreaterOrEqual(t, res.NewPosition, 0)
			assert.Less(t, res.NewPosition, board.BoardSize)
		}
	}
}

func TestRollRejectedWithNoDiceLeft(t *testing.T) {
	store := newFakeStore()
	before := eventOnlyState(5000, 7, 0)
	before.Properties = []string{"well"}
	store.states["r.u"] = before
	eng := newTestEngine(store)

	_, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
	assert.Equal(t, ErrNoDiceLeft, err)
	assert.Equal(t, before, store.states["r.u"], "rejection must leave state untouched")
	assert.Equal(t, 0, store.saves)
}

func TestInvalidDiceValue(t *testing.T) {
	store := newFakeStore()
	store.states["r.u"] = eventOnlyState(5000, 0, 3)
	eng := newTestEngine(store)

	for _, d := range []int{0, 7, -1} {
		_, err := eng.ResolveTurn("r", "u", d, Skip, 2)
		assert.Equal(t, ErrInvalidDice, err)
	}
	assert.Equal(t, 0, store.saves)
}

func TestBuyProperty(t *testing.T) {
	store := newFakeStore()
	st := eventOnlyState(100000, 0, 3)
	st.Assignments = map[string]int{"well": 3}
	store.states["r.u"] = st
	eng := newTestEngine(store)

	res, err := eng.ResolveTurn("r", "u", 3, Buy, 2)
	require.NoError(t, err)
	// -30000 purchase + 1500 income from the property just bought.
	assert.Equal(t, -28500, res.CoinDelta)
	assert.False(t, res.IsGameOver)

	after := store.states["r.u"]
	assert.Equal(t, 71500, after.Coins)
	assert.Equal(t, []string{"well"}, after.Properties)
	assert.Equal(t, 2, after.DiceLeft)
	assert.Equal(t, 1, store.saves)
}

func TestBuyWithInsufficientFundsActsAsSkip(t *testing.T) {
	store := newFakeStore()
	st := eventOnlyState(10000, 0, 3)
	st.Assignments = map[string]int{"well": 3}
	store.states["r.u"] = st
	eng := newTestEngine(store)

	res, err := eng.ResolveTurn("r", "u", 3, Buy, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CoinDelta)
	assert.Contains(t, res.Description, "Not enough coins")

	after := store.states["r.u"]
	assert.Equal(t, 10000, after.Coins)
	assert.Empty(t, after.Properties)
}

func TestVisitOwnProperty(t *testing.T) {
	store := newFakeStore()
	st := eventOnlyState(50000, 0, 3)
	st.Assignments = map[string]int{"well": 3}
	st.Properties = []string{"well"}
	store.states["r.u"] = st
	eng := newTestEngine(store)

	res, err := eng.ResolveTurn("r", "u", 3, Buy, 2)
	require.NoError(t, err)
	assert.Contains(t, res.Description, "your own")
	// Only income, no purchase and no double-add.
	assert.Equal(t, 1500, res.CoinDelta)
	assert.Equal(t, []string{"well"}, store.states["r.u"].Properties)
}

func TestPropertyIncomeIsOrderIndependent(t *testing.T) {
	for _, owned := range [][]string{{"well", "spring"}, {"spring", "well"}} {
		store := newFakeStore()
		st := eventOnlyState(100000, 0, 3)
		st.Assignments = map[string]int{"well": 3}
		st.Properties = owned
		store.states["r.u"] = st
		eng := newTestEngine(store)

		res, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
		require.NoError(t, err)
		assert.Equal(t, 1500+2500, res.CoinDelta, "owned %v", owned)
	}
}

func TestOwnershipOfUnplacedPropertyIsRetained(t *testing.T) {
	store := newFakeStore()
	st := eventOnlyState(100000, 0, 3)
	st.Properties = []string{"well", "spring"}
	store.states["r.u"] = st
	// Failure draw on the event tile: -5000 from choice 2.
	eng := newTestEngine(store, 99)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
	require.NoError(t, err)
	assert.Equal(t, -5000+1500+2500, res.CoinDelta)
	assert.Equal(t, []string{"well", "spring"}, store.states["r.u"].Properties)
}

func TestEventChoiceTwoSuccessScenario(t *testing.T) {
	store := newFakeStore()
	store.states["r.u"] = eventOnlyState(100000, 0, 3)
	// Draw 10 < 75 succeeds choice 2.
	eng := newTestEngine(store, 10)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewPosition)
	assert.Equal(t, 15000, res.CoinDelta)
	assert.Contains(t, res.Description, "SUCCESS.")

	after := store.states["r.u"]
	assert.Equal(t, 115000, after.Coins)
	assert.Equal(t, 3, after.Position)
	assert.Equal(t, 2, after.DiceLeft)
}

func TestEventChoiceOneFailure(t *testing.T) {
	store := newFakeStore()
	store.states["r.u"] = eventOnlyState(100000, 0, 3)
	// Draw 40 is not < 40: choice 1 fails.
	eng := newTestEngine(store, 40)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 1)
	require.NoError(t, err)
	assert.Equal(t, -60000, res.CoinDelta)
	assert.Equal(t, 40000, store.states["r.u"].Coins)
}

func TestUnknownEventChoiceDefaultsToChoiceTwo(t *testing.T) {
	store := newFakeStore()
	store.states["r.u"] = eventOnlyState(100000, 0, 3)
	eng := newTestEngine(store, 10)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 0)
	require.NoError(t, err)
	assert.Equal(t, 15000, res.CoinDelta)
}

func TestMalformedTemplateIsNoOp(t *testing.T) {
	store := newFakeStore()
	st := eventOnlyState(100000, 0, 3)
	for i := range st.Events {
		st.Events[i] = 1 // the one-choice template
	}
	store.states["r.u"] = st
	eng := newTestEngine(store)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CoinDelta)
	assert.Equal(t, "Nothing happens.", res.Description)
	assert.Equal(t, 2, store.states["r.u"].DiceLeft)
}

func TestBankruptcyBoundary(t *testing.T) {
	// Choice 2 failure costs 5000. With 4999 coins the prospective total is
	// -1: game over, nothing persisted.
	store := newFakeStore()
	before := eventOnlyState(4999, 0, 3)
	store.states["r.u"] = before
	eng := newTestEngine(store, 99)

	res, err := eng.ResolveTurn("r", "u", 3, Skip, 2)
	require.NoError(t, err)
	assert.True(t, res.IsGameOver)
	assert.Equal(t, -5000, res.CoinDelta)
	assert.Contains(t, res.Description, "-1")
	assert.Equal(t, before, store.states["r.u"], "game over must not mutate state")
	assert.Equal(t, 0, store.saves)

	// With exactly 5000 the prospective total is 0: persisted, no game over.
	store = newFakeStore()
	store.states["r.u"] = eventOnlyState(5000, 0, 3)
	eng = newTestEngine(store, 99)

	res, err = eng.ResolveTurn("r", "u", 3, Skip, 2)
	require.NoError(t, err)
	assert.False(t, res.IsGameOver)
	assert.Equal(t, 0, store.states["r.u"].Coins)
	assert.Equal(t, 2, store.states["r.u"].DiceLeft)
}

func TestInitializeEpochIsInjective(t *testing.T) {
	for seed := 0; seed < 20; seed++ {
		store := newFakeStore()
		draws := make([]int, 0, 64)
		for i := 0; i < 64; i++ {
			draws = append(draws, (seed*31+i*7)%1000)
		}
		eng := newTestEngine(store, draws...)

		state, err := eng.InitializeEpoch("r", "u")
		require.NoError(t, err)

		assert.Len(t, state.Assignments, len(testCatalogs().Properties))
		used := map[int]bool{}
		for id, pos := range state.Assignments {
			assert.GreaterOrEqual(t, pos, 0, "property %s", id)
			assert.Less(t, pos, board.BoardSize, "property %s", id)
			assert.False(t, used[pos], "position %d assigned twice", pos)
			used[pos] = true
		}
		assert.Len(t, state.Events, board.BoardSize)
		assert.Equal(t, StartingCoins, state.Coins)
		assert.Equal(t, StartingDice, state.DiceLeft)
		assert.Equal(t, 0, state.Position)
		assert.Empty(t, state.Properties)
	}
}

func TestInitializeEpochAssignsAllTilesWhenCatalogIsLarge(t *testing.T) {
	catalogs := testCatalogs()
	for i := 0; i < 30; i++ {
		catalogs.Properties = append(catalogs.Properties, models.PropertyType{
			Id: fmt.Sprintf("extra%d", i), Name: "Extra", Price: 1000, IncomePerTurn: 10,
		})
	}
	store := newFakeStore()
	eng := NewEngine(catalogs, store, nil, nil, &scriptRand{})

	state, err := eng.InitializeEpoch("r", "u")
	require.NoError(t, err)
	// Domain size is min(catalog size, board size).
	assert.Len(t, state.Assignments, board.BoardSize)
}

func TestLoadOrInitCreatesFreshEpoch(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine(store)

	state, err := eng.LoadOrInit("r", "u")
	require.NoError(t, err)
	assert.Equal(t, StartingCoins, state.Coins)
	assert.Equal(t, 1, store.saves)

	// Second call loads, does not re-init.
	again, err := eng.LoadOrInit("r", "u")
	require.NoError(t, err)
	assert.Equal(t, state, again)
	assert.Equal(t, 1, store.saves)
}

func TestGrantDice(t *testing.T) {
	store := newFakeStore()
	store.states["r.u"] = eventOnlyState(1000, 0, 2)
	eng := newTestEngine(store)

	state, err := eng.GrantDice("r", "u", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, state.DiceLeft)

	// Zero grant is a no-op write-wise.
	saves := store.saves
	_, err = eng.GrantDice("r", "u", 0)
	require.NoError(t, err)
	assert.Equal(t, saves, store.saves)
}
