package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterwise-app/play-backend/app/models"
)

func TestLoadCatalogs(t *testing.T) {
	c, err := LoadCatalogs("properties.json", "events.json")
	require.NoError(t, err)

	assert.NotEmpty(t, c.Properties)
	assert.Len(t, c.Events, 5)
	for _, e := range c.Events {
		assert.Len(t, e.Choices, 2, "event %q", e.Title)
		for _, ch := range e.Choices {
			assert.GreaterOrEqual(t, ch.SuccessRate, 0)
			assert.LessOrEqual(t, ch.SuccessRate, 100)
		}
	}
	assert.LessOrEqual(t, len(c.Properties), BoardSize)
}

func TestPropertyById(t *testing.T) {
	c := Catalogs{Properties: []models.PropertyType{{Id: "well", Name: "Village Well"}}}

	p, err := c.PropertyById("well")
	require.NoError(t, err)
	assert.Equal(t, "Village Well", p.Name)

	_, err = c.PropertyById("nosuch")
	assert.Equal(t, ErrNotFound, err)
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		c    Catalogs
	}{
		{"duplicate property id", Catalogs{
			Properties: []models.PropertyType{{Id: "a"}, {Id: "a"}},
			Events:     []models.EventTemplate{{Title: "e"}},
		}},
		{"empty property id", Catalogs{
			Properties: []models.PropertyType{{Id: ""}},
			Events:     []models.EventTemplate{{Title: "e"}},
		}},
		{"empty event catalog", Catalogs{
			Properties: []models.PropertyType{{Id: "a"}},
		}},
		{"success rate out of range", Catalogs{
			Properties: []models.PropertyType{{Id: "a"}},
			Events: []models.EventTemplate{{Title: "e", Choices: []models.EventChoice{
				{SuccessRate: 101}, {SuccessRate: 50},
			}}},
		}},
	}
	for _, tc := range cases {
		assert.Error(t, tc.c.validate(), tc.name)
	}
}
