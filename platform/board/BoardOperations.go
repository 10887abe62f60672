package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/waterwise-app/play-backend/app/models"
)

// BoardSize is the number of positions on the circular board.
const BoardSize = 22

var ErrNotFound = errors.New("not found")

// Catalogs holds the immutable property and event catalogs. Loaded once at
// process start and passed explicitly into the engine, never read as globals.
type Catalogs struct {
	Properties []models.PropertyType
	Events     []models.EventTemplate
}

func LoadCatalogs(propertiesPath, eventsPath string) (Catalogs, error) {
	var c Catalogs
	if err := readJSON(propertiesPath, &c.Properties); err != nil {
		return c, err
	}
	if err := readJSON(eventsPath, &c.Events); err != nil {
		return c, err
	}
	return c, c.validate()
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c Catalogs) validate() error {
	seen := map[string]bool{}
	for _, p := range c.Properties {
		if p.Id == "" {
			return errors.New("property with empty id")
		}
		if seen[p.Id] {
			return fmt.Errorf("duplicate property id %q", p.Id)
		}
		seen[p.Id] = true
		if p.Price < 0 || p.IncomePerTurn < 0 {
			return fmt.Errorf("property %q has negative price or income", p.Id)
		}
	}
	if len(c.Events) == 0 {
		return errors.New("event catalog is empty")
	}
	for _, e := range c.Events {
		for _, ch := range e.Choices {
			if ch.SuccessRate < 0 || ch.SuccessRate > 100 {
				return fmt.Errorf("event %q has success rate outside 0-100", e.Title)
			}
		}
		// A template with fewer than two choices is tolerated here and
		// resolved as a no-op at play time.
	}
	return nil
}

func (c Catalogs) PropertyById(id string) (models.PropertyType, error) { // O(N), catalogs are tiny
	for _, p := range c.Properties {
		if p.Id == id {
			return p, nil
		}
	}
	return models.PropertyType{}, ErrNotFound
}
