package history_test

import (
	"bytes"
	"log/slog"

	"github.com/vidyasagar/navsurf/history"
)

type change struct {
	Loc    history.Location
	Action history.Action
}

// recorder collects every notification of a history.
type recorder struct {
	changes []change
}

func record(h history.History) *recorder {
	r := &recorder{}
	h.Listen(func(loc history.Location, action history.Action) {
		r.changes = append(r.changes, change{Loc: loc, Action: action})
	})
	return r
}

func (r *recorder) last() change {
	if len(r.changes) == 0 {
		return change{}
	}
	return r.changes[len(r.changes)-1]
}

func (r *recorder) paths() []string {
	out := make([]string, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, string(c.Action)+" "+c.Loc.Path())
	}
	return out
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

// pendingHook captures resolve calls so a test can decide later.
type pendingHook struct {
	calls    int
	next     history.Location
	action   history.Action
	resolves []func(bool)
}

func (p *pendingHook) hook(next history.Location, action history.Action, resolve func(bool)) {
	p.calls++
	p.next = next
	p.action = action
	p.resolves = append(p.resolves, resolve)
}

func (p *pendingHook) resolve(allow bool) {
	p.resolves[len(p.resolves)-1](allow)
}
