package agent

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameConfig = `{"unitInformation": [
	{"shorthand": "FF", "cost": 1}, {"shorthand": "EF", "cost": 4},
	{"shorthand": "DF", "cost": 3, "damage": 5, "range": 3.5},
	{"shorthand": "PI", "cost": 1}, {"shorthand": "EI", "cost": 3}, {"shorthand": "SI", "cost": 1}
]}`

func frame(kind, turn int, cores, bits float64, breaches string) string {
	return fmt.Sprintf(`{"turnInfo":[%d,%d,-1],"p1Stats":[30,%g,%g,0],"p2Stats":[30,0,0,0],`+
		`"p1Units":[],"p2Units":[],"events":{"breach":[%s]}}`, kind, turn, cores, bits, breaches)
}

func play(t *testing.T, a *Agent, lines ...string) []string {
	t.Helper()
	var out bytes.Buffer
	conn := ipc.NewConnection(strings.NewReader(strings.Join(lines, "\n")), &out, nil)
	a.Register(conn)
	require.NoError(t, conn.ReadLoop(context.Background()))
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestGame(t *testing.T) {
	a := New(rules.DefaultPlaybook(), Options{})
	got := play(t, a,
		gameConfig,
		frame(0, 0, 0, 5, ""),
		`{"turnInfo":[0,1,-1],"p1Stats":[30,1,1,0],"p2Stats":[30,1,1,0],"p1Units":[],"p2Units":[]}`,
		frame(1, 1, 0, 0, `[[5,8],1,3,"9",2],[[22,8],1,3,"10",1]`),
		frame(0, 2, 9, 0, `[[5,8],1,3,"9",2]`),
		`{"turnInfo":[2,2,0]}`,
		frame(0, 3, 9, 9, ""),
	)

	assert.Equal(t, []string{
		`[]`,
		`[["SI",2,11],["SI",25,11],["SI",11,2],["SI",16,2],["PI",13,0]]`,
		`[]`, `[]`,
		`[["DF",5,9]]`,
		`[]`,
	}, got)
	assert.Equal(t, []rules.BreachRecord{{At: model.Coord{X: 5, Y: 8}, Turn: 1}}, a.Engine.Breaches().Records(),
		"the turn frame repeating the action frame's breach adds nothing")
}

func TestSameCellBreachesAreAllLogged(t *testing.T) {
	a := New(rules.DefaultPlaybook(), Options{})
	got := play(t, a, gameConfig, frame(0, 1, 9, 0, `[[5,8],1,3,"9",2],[[5,8],1,3,"10",2]`))

	assert.Equal(t, []string{`[["DF",5,9]]`, `[]`}, got, "one turret per cell")
	assert.Equal(t, 2, a.Engine.Breaches().Len())
}

func TestTurnWithoutConfig(t *testing.T) {
	a := New(rules.DefaultPlaybook(), Options{MaxBulk: 2})
	got := play(t, a, frame(0, 4, 0, 9, ""))
	assert.Equal(t, []string{`[]`, `[["PI",13,0],["PI",13,0]]`}, got)
}

func TestRenderBlocks(t *testing.T) {
	var diag bytes.Buffer
	a := New(rules.DefaultPlaybook(), Options{RenderBlocks: true, Diag: &diag})
	play(t, a, gameConfig, frame(0, 1, 0, 0, ""))

	out := diag.String()
	require.True(t, strings.HasPrefix(out, "turn 1 block candidates\n"))
	assert.Contains(t, out, "x")
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), model.ArenaSize+1)
}

func TestBadConfigFallsBack(t *testing.T) {
	a := New(rules.DefaultPlaybook(), Options{})
	got := play(t, a, `{"unitInformation": []}`, frame(0, 1, 3, 0, `[[5,8],1,3,"9",2]`))
	assert.Equal(t, []string{`[["DF",5,9]]`, `[]`}, got)
}
