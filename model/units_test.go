package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{"unitInformation": [
	{"shorthand": "FF", "display": "Filter", "cost": 1.0},
	{"shorthand": "EF", "display": "Encryptor", "cost": 4.0, "range": 3.0},
	{"shorthand": "DF", "display": "Destructor", "cost": 3.0, "damage": 5.0, "range": 3.5},
	{"shorthand": "PI", "display": "Ping", "cost": 1.0, "damage": 1.0, "range": 3.5},
	{"shorthand": "EI", "display": "EMP", "cost": 3.0, "damage": 3.0, "range": 5.5},
	{"shorthand": "SI", "display": "Scrambler", "cost": 1.0, "range": 4.5},
	{"shorthand": "RM", "display": "Remove"}
]}`

func TestNewCatalogFromConfig(t *testing.T) {
	var cfg GameConfig
	require.NoError(t, json.Unmarshal([]byte(sampleConfig), &cfg))

	cat, err := NewCatalog(cfg)
	require.NoError(t, err)

	turret := cat.Spec(Turret)
	assert.Equal(t, "DF", turret.Shorthand)
	assert.Equal(t, 5, turret.Damage)
	assert.InDelta(t, 3.5, turret.Range, 1e-9)
	assert.True(t, turret.CanAttack())

	assert.InDelta(t, 5.5, cat.Spec(Demolisher).Range, 1e-9)
	assert.False(t, cat.Spec(Wall).CanAttack())

	ut, ok := cat.Lookup("EI")
	require.True(t, ok)
	assert.Equal(t, Demolisher, ut)
	_, ok = cat.Lookup("RM")
	assert.False(t, ok)
}

func TestNewCatalogAlternateKeys(t *testing.T) {
	cfg := GameConfig{UnitInformation: make([]UnitInformation, NumUnitTypes)}
	cfg.UnitInformation[Turret] = UnitInformation{Shorthand: "DT", Cost1: 6, AttackDamageWalker: 6, AttackRange: 2.5}

	cat, err := NewCatalog(cfg)
	require.NoError(t, err)
	spec := cat.Spec(Turret)
	assert.Equal(t, "DT", spec.Shorthand)
	assert.InDelta(t, 6.0, spec.Cost, 1e-9)
	assert.Equal(t, 6, spec.Damage)
	assert.InDelta(t, 2.5, spec.Range, 1e-9)

	// Untouched entries keep the defaults.
	assert.Equal(t, DefaultCatalog().Spec(Scout), cat.Spec(Scout))
}

func TestNewCatalogTooShort(t *testing.T) {
	_, err := NewCatalog(GameConfig{UnitInformation: make([]UnitInformation, 3)})
	assert.Error(t, err)
}

func TestUnitTypeStationary(t *testing.T) {
	tests := []struct {
		t    UnitType
		want bool
	}{
		{Wall, true},
		{Support, true},
		{Turret, true},
		{Scout, false},
		{Demolisher, false},
		{Interceptor, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.t.Stationary(), "%s.Stationary()", tc.t)
	}
}

func TestParseUnitType(t *testing.T) {
	for in, want := range map[string]UnitType{"turret": Turret, "DF": Turret, "Scout": Scout, "si": Interceptor} {
		got, err := ParseUnitType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnitType("dragon")
	assert.Error(t, err)
}

func TestCheapest(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, Wall, cat.Cheapest(Wall, Turret, Support))
	assert.Equal(t, Turret, cat.Cheapest(Support, Turret))
}
