package agent

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nstehr/rampart/ingest"
	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/rules"
)

// Options tune the agent's outer behaviour. The zero value is usable.
type Options struct {
	MaxBulk      int       // cap on one bulk spawn; DefaultMaxBulk when zero
	RenderBlocks bool      // draw the block candidates of every turn
	Diag         io.Writer // render target; stderr when nil
}

// Agent owns the decision-making for a single game.
type Agent struct {
	Engine *rules.Engine

	playbook  rules.Playbook
	opts      Options
	submitter *ipc.Submitter
}

func New(pb rules.Playbook, opts Options) *Agent {
	if opts.Diag == nil {
		opts.Diag = os.Stderr
	}
	return &Agent{playbook: pb, opts: opts}
}

// Register installs the agent's handlers on conn.
func (a *Agent) Register(conn *ipc.Connection) {
	conn.RegisterHandler(ipc.KindConfig, a.HandleConfig)
	conn.RegisterHandler(ipc.KindTurn, a.HandleTurn)
	conn.RegisterHandler(ipc.KindAction, a.HandleAction)
	conn.RegisterHandler(ipc.KindEnd, a.HandleEnd)
}

// HandleConfig builds the unit catalog and a fresh engine for the game.
// A config that cannot be read falls back to the stock catalog so the game
// still gets played.
func (a *Agent) HandleConfig(env ipc.Envelope) ([]any, error) {
	cat, err := ingest.ParseConfig(env.Data)
	if err != nil {
		slog.Warn("using default unit catalog", "error", err)
		cat = model.DefaultCatalog()
	}
	if err := a.start(cat); err != nil {
		return nil, err
	}
	slog.Info("game started", "playbook", a.playbook.Name, "rules", a.Engine.Rules())
	return nil, nil
}

func (a *Agent) start(cat *model.Catalog) error {
	engine, err := rules.NewEngine(cat, a.playbook)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	a.Engine = engine
	a.submitter = ipc.NewSubmitter(cat, a.opts.MaxBulk)
	return nil
}

// HandleTurn plans the turn and always replies with the build and deploy
// lines, both empty when the frame could not be read.
func (a *Agent) HandleTurn(env ipc.Envelope) ([]any, error) {
	if a.Engine == nil {
		slog.Warn("turn before game config, using default unit catalog")
		if err := a.start(model.DefaultCatalog()); err != nil {
			return ipc.Submission{}.Lines(), err
		}
	}

	snap, plan, err := a.Engine.Turn(env.Data)
	if err != nil {
		slog.Error("skipping turn", "error", err)
		return ipc.Submission{}.Lines(), nil
	}

	if a.opts.RenderBlocks {
		fmt.Fprintf(a.opts.Diag, "turn %d block candidates\n%s", snap.Turn, model.RenderLocations(plan.BlockCandidates))
	}

	sub := a.submitter.Submit(snap.Board, snap.Self, plan.Intents)
	slog.Info("turn submitted",
		"turn", snap.Turn,
		"cores", snap.Self.Cores,
		"bits", snap.Self.Bits,
		"intents", len(plan.Intents),
		"builds", len(sub.Build),
		"deploys", len(sub.Deploy),
		"breaches", a.Engine.Breaches().Len(),
	)
	return sub.Lines(), nil
}

// HandleAction reads an action frame for breaches. Nothing is sent back.
func (a *Agent) HandleAction(env ipc.Envelope) ([]any, error) {
	if a.Engine == nil {
		return nil, nil
	}
	snap, err := ingest.Parse(env.Data)
	if err != nil {
		return nil, fmt.Errorf("action frame: %w", err)
	}
	a.Engine.Observe(snap)
	return nil, nil
}

func (a *Agent) HandleEnd(env ipc.Envelope) ([]any, error) {
	var cells []model.Coord
	if a.Engine != nil {
		cells = a.Engine.Breaches().Locations()
	}
	slog.Info("game ended", "breachesTaken", len(cells), "breachCells", cells)
	return nil, nil
}
