package rules

import (
	"testing"

	"github.com/nstehr/rampart/model"
	"github.com/stretchr/testify/assert"
)

func TestBreachLogRecord(t *testing.T) {
	log := NewBreachLog()
	a := model.Coord{X: 5, Y: 8}
	b := model.Coord{X: 22, Y: 8}

	added := log.Record(3, []model.Breach{
		{At: a, Owner: model.Enemy, Unit: "7"},
		{At: b, Owner: model.Self, Unit: "8"},
	})
	assert.Equal(t, 1, added, "our own breaches are not logged")
	assert.Equal(t, 1, log.Record(4, []model.Breach{{At: a, Owner: model.Enemy, Unit: "9"}}))

	assert.Equal(t, []BreachRecord{{At: a, Turn: 3}, {At: a, Turn: 4}}, log.Records())
	assert.Equal(t, []model.Coord{a, a}, log.Locations())
	assert.Equal(t, 2, log.Len())
}

func TestBreachLogSameCellSameFrame(t *testing.T) {
	log := NewBreachLog()
	a := model.Coord{X: 5, Y: 8}

	added := log.Record(3, []model.Breach{
		{At: a, Owner: model.Enemy, Unit: "11"},
		{At: a, Owner: model.Enemy, Unit: "12"},
	})
	assert.Equal(t, 2, added)
	assert.Equal(t, []BreachRecord{{At: a, Turn: 3}, {At: a, Turn: 3}}, log.Records())

	assert.Equal(t, 2, log.Record(5, []model.Breach{{At: a, Owner: model.Enemy}, {At: a, Owner: model.Enemy}}),
		"breaches without a unit id are always recorded")
	assert.Equal(t, 4, log.Len())
}

func TestBreachLogReplayedInNextTurn(t *testing.T) {
	log := NewBreachLog()
	a := model.Coord{X: 5, Y: 8}

	assert.Equal(t, 1, log.Record(3, []model.Breach{{At: a, Owner: model.Enemy, Unit: "11"}}))
	assert.Zero(t, log.Record(4, []model.Breach{{At: a, Owner: model.Enemy, Unit: "11"}}))
	assert.Equal(t, []BreachRecord{{At: a, Turn: 3}}, log.Records())
}

func TestBreachLogRecordsIsACopy(t *testing.T) {
	log := NewBreachLog()
	log.Record(1, []model.Breach{{At: model.Coord{X: 5, Y: 8}, Owner: model.Enemy}})
	recs := log.Records()
	recs[0].Turn = 99
	assert.Equal(t, 1, log.Records()[0].Turn)
}
