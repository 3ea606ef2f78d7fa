package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/event"
)

// stubGrid records scroll requests and serves properties from a map.
type stubGrid struct {
	props    map[string]any
	scrolled [][2]int
}

func (g *stubGrid) ResolveProperty(key string) layer.Value {
	return layer.Resolve(key, layer.NewLayerWithData("grid", layer.SourceGrid, layer.PriorityGrid, g.props))
}

func (g *stubGrid) ResolveCellProperty(_ event.Cell, key string) layer.Value {
	return g.ResolveProperty(key)
}

func (g *stubGrid) ScrollBy(columns, rows int) {
	g.scrolled = append(g.scrolled, [2]int{columns, rows})
}

// recorder is a wheel-capable feature that appends its alias to a shared log.
type recorder struct {
	Base
	log    *[]string
	result Result
	panics bool
}

func newRecorder(alias string, log *[]string, result Result) *recorder {
	return &recorder{Base: NewBase(alias), log: log, result: result}
}

func (r *recorder) HandleWheelMoved(_ Grid, _ *event.Event) Result {
	*r.log = append(*r.log, r.Alias())
	if r.panics {
		r.panics = false
		panic("boom")
	}
	return r.result
}

// initRecorder records initialization order.
type initRecorder struct {
	Base
	log      *[]string
	fail     bool
	detached bool
}

func (r *initRecorder) InitializeOn(_ Grid) error {
	*r.log = append(*r.log, r.Alias())
	if r.fail {
		return errors.New("no")
	}
	return nil
}

func (r *initRecorder) Detach(_ Grid) { r.detached = true }

// keyOnly has no wheel capability.
type keyOnly struct {
	Base
	seen int
}

func (k *keyOnly) HandleKeyDown(_ Grid, _ *event.Event) Result {
	k.seen++
	return Handled()
}

func wheel() *event.Event {
	return event.NewWheel(event.Primitive{DeltaY: -3}, event.NoCell)
}

func TestChainAddAndAliases(t *testing.T) {
	var log []string
	c, err := NewChain(
		newRecorder("A", &log, Forward()),
		newRecorder("B", &log, Forward()),
		newRecorder("C", &log, Forward()),
	)
	require.NoError(t, err)

	aliases, err := c.Aliases()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, aliases)
	assert.Equal(t, 3, c.Len())
	assert.NoError(t, c.Validate())
}

func TestChainRejectsBadFeatures(t *testing.T) {
	var log []string
	c, err := NewChain(newRecorder("A", &log, Forward()))
	require.NoError(t, err)

	assert.ErrorIs(t, c.Add(nil), ErrNilFeature)
	assert.ErrorIs(t, c.Add(newRecorder("", &log, Forward())), ErrEmptyAlias)
	assert.ErrorIs(t, c.Add(newRecorder("A", &log, Forward())), ErrDuplicateAlias)
	assert.ErrorIs(t, c.InsertBefore("missing", newRecorder("X", &log, Forward())), ErrFeatureNotFound)
	assert.ErrorIs(t, c.InsertAfter("missing", newRecorder("X", &log, Forward())), ErrFeatureNotFound)

	_, err = c.Remove("missing")
	assert.ErrorIs(t, err, ErrFeatureNotFound)
	assert.Equal(t, 1, c.Len())
}

func TestChainInsertBeforeAndAfter(t *testing.T) {
	var log []string
	c, err := NewChain(newRecorder("A", &log, Forward()), newRecorder("C", &log, Forward()))
	require.NoError(t, err)

	require.NoError(t, c.InsertAfter("A", newRecorder("B", &log, Forward())))
	require.NoError(t, c.InsertBefore("A", newRecorder("head", &log, Forward())))
	require.NoError(t, c.InsertAfter("C", newRecorder("tail", &log, Forward())))

	aliases, err := c.Aliases()
	require.NoError(t, err)
	assert.Equal(t, []string{"head", "A", "B", "C", "tail"}, aliases)
	assert.Equal(t, "head", c.Head().Alias())
}

func TestRemoveRelinksPredecessor(t *testing.T) {
	var log []string
	c, err := NewChain(
		newRecorder("A", &log, Forward()),
		newRecorder("B", &log, Forward()),
		newRecorder("C", &log, Forward()),
	)
	require.NoError(t, err)

	removed, err := c.Remove("B")
	require.NoError(t, err)
	assert.Nil(t, removed.Next())
	assert.Nil(t, c.Find("B"))

	d := NewDispatcher(c)
	require.NoError(t, d.Dispatch(&stubGrid{}, wheel()))
	assert.Equal(t, []string{"A", "C"}, log)

	// The removed feature can join another position.
	require.NoError(t, c.InsertBefore("A", removed))
	aliases, _ := c.Aliases()
	assert.Equal(t, []string{"B", "A", "C"}, aliases)

	_, err = c.Remove("B")
	require.NoError(t, err)
	_, err = c.Remove("C")
	require.NoError(t, err)
	_, err = c.Remove("A")
	require.NoError(t, err)
	assert.Nil(t, c.Head())
	assert.Zero(t, c.Len())
}

func TestDispatchNoClaimIsNoop(t *testing.T) {
	k := &keyOnly{Base: NewBase("keys")}
	c, err := NewChain(k)
	require.NoError(t, err)
	g := &stubGrid{}
	d := NewDispatcher(c)

	require.NoError(t, d.Dispatch(g, wheel()))
	assert.Zero(t, k.seen)
	assert.Empty(t, g.scrolled)

	empty, err := NewChain()
	require.NoError(t, err)
	assert.NoError(t, NewDispatcher(empty).Dispatch(g, wheel()))

	stats := d.Stats()
	assert.Equal(t, uint64(1), stats.Dispatched)
	assert.Equal(t, uint64(1), stats.Unhandled)
}

func TestDispatchHandledStopsWalk(t *testing.T) {
	var log []string
	c, err := NewChain(
		newRecorder("A", &log, Forward()),
		newRecorder("B", &log, Handled()),
		newRecorder("C", &log, Forward()),
	)
	require.NoError(t, err)
	d := NewDispatcher(c)

	require.NoError(t, d.Dispatch(&stubGrid{}, wheel()))
	assert.Equal(t, []string{"A", "B"}, log)
	assert.Equal(t, uint64(1), d.Stats().Handled)
}

func TestDispatchTransparentFeatures(t *testing.T) {
	var log []string
	k := &keyOnly{Base: NewBase("keys")}
	c, err := NewChain(k, newRecorder("A", &log, Handled()))
	require.NoError(t, err)

	require.NoError(t, NewDispatcher(c).Dispatch(&stubGrid{}, wheel()))
	assert.Equal(t, []string{"A"}, log)
	assert.Zero(t, k.seen)
}

func TestDispatchPanicIsolatedToOneEvent(t *testing.T) {
	var log []string
	faulty := newRecorder("faulty", &log, Forward())
	faulty.panics = true
	keys := &keyOnly{Base: NewBase("keys")}
	c, err := NewChain(faulty, keys, newRecorder("after", &log, Handled()))
	require.NoError(t, err)

	var panicAlias string
	d := NewDispatcher(c, WithPanicHandler(func(alias string, _ *event.Event, _ any, _ []byte) {
		panicAlias = alias
	}))

	err = d.Dispatch(&stubGrid{}, wheel())
	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "faulty", herr.Alias)
	assert.Equal(t, event.Wheel, herr.Kind)
	assert.True(t, herr.Panicked())
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.NotEmpty(t, herr.Stack)
	assert.Equal(t, "faulty", panicAlias)
	assert.Equal(t, []string{"faulty"}, log)

	// The next event walks the full chain normally.
	log = log[:0]
	require.NoError(t, d.Dispatch(&stubGrid{}, wheel()))
	assert.Equal(t, []string{"faulty", "after"}, log)

	// So does an event of another kind.
	key, err := event.NewKey(event.KeyDown, event.Primitive{Key: event.KeyEnter})
	require.NoError(t, err)
	require.NoError(t, d.Dispatch(&stubGrid{}, key))
	assert.Equal(t, 1, keys.seen)

	stats := d.Stats()
	assert.Equal(t, uint64(3), stats.Dispatched)
	assert.Equal(t, uint64(1), stats.Failed)
	assert.Equal(t, uint64(1), stats.Panicked)
	assert.Equal(t, uint64(2), stats.Handled)
}

func TestDispatchErrorResult(t *testing.T) {
	var log []string
	cause := errors.New("bad state")
	c, err := NewChain(newRecorder("A", &log, Error(cause)), newRecorder("B", &log, Handled()))
	require.NoError(t, err)

	err = NewDispatcher(c).Dispatch(&stubGrid{}, wheel())
	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.False(t, herr.Panicked())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"A"}, log)
}

func TestDispatchDetectsCycle(t *testing.T) {
	var log []string
	a := newRecorder("A", &log, Forward())
	b := newRecorder("B", &log, Forward())
	c, err := NewChain(a, b)
	require.NoError(t, err)

	// Corrupt the links from outside the chain.
	b.SetNext(a)

	assert.ErrorIs(t, c.Validate(), ErrCycle)
	err = NewDispatcher(c).Dispatch(&stubGrid{}, wheel())
	assert.ErrorIs(t, err, ErrCycle)
	assert.Len(t, log, 2)
}

func TestDispatchNilEvent(t *testing.T) {
	c, err := NewChain()
	require.NoError(t, err)
	assert.ErrorIs(t, NewDispatcher(c).Dispatch(&stubGrid{}, nil), ErrNilEvent)
}

func TestAttachInitializesOnceInOrder(t *testing.T) {
	var log []string
	a := &initRecorder{Base: NewBase("A"), log: &log}
	b := &initRecorder{Base: NewBase("B"), log: &log}
	c, err := NewChain(a, b)
	require.NoError(t, err)

	g := &stubGrid{}
	require.NoError(t, c.Attach(g))
	assert.Equal(t, []string{"A", "B"}, log)
	assert.ErrorIs(t, c.Attach(g), ErrAlreadyAttached)

	// Late insertion initializes only the newcomer.
	require.NoError(t, c.InsertAfter("A", &initRecorder{Base: NewBase("late"), log: &log}))
	assert.Equal(t, []string{"A", "B", "late"}, log)

	_, err = c.Remove("B")
	require.NoError(t, err)
	assert.True(t, b.detached)
}

func TestLateInsertFailureRollsBack(t *testing.T) {
	var log []string
	c, err := NewChain(&initRecorder{Base: NewBase("A"), log: &log})
	require.NoError(t, err)
	require.NoError(t, c.Attach(&stubGrid{}))

	err = c.Add(&initRecorder{Base: NewBase("bad"), log: &log, fail: true})
	require.Error(t, err)
	assert.Nil(t, c.Find("bad"))
	assert.Equal(t, 1, c.Len())
	assert.NoError(t, c.Validate())
}

func TestAttachFailureCanBeRetried(t *testing.T) {
	var log []string
	bad := &initRecorder{Base: NewBase("B"), log: &log, fail: true}
	c, err := NewChain(
		&initRecorder{Base: NewBase("A"), log: &log},
		bad,
		&initRecorder{Base: NewBase("C"), log: &log},
	)
	require.NoError(t, err)

	require.Error(t, c.Attach(&stubGrid{}))
	assert.False(t, c.Attached())
	assert.Equal(t, []string{"A", "B"}, log)

	bad.fail = false
	require.NoError(t, c.Attach(&stubGrid{}))
	assert.True(t, c.Attached())
	assert.Equal(t, []string{"A", "B", "B", "C"}, log)
}

func TestResultStatus(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		handled bool
		isErr   bool
		status  string
	}{
		{"forward", Forward(), false, false, "forward"},
		{"handled", Handled(), true, false, "handled"},
		{"message", HandledWithMessage("ok"), true, false, "handled"},
		{"error", Errorf("bad %d", 1), false, true, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.handled, tt.result.IsHandled())
			assert.Equal(t, tt.isErr, tt.result.IsError())
			assert.Equal(t, tt.status, tt.result.Status.String())
		})
	}
}
