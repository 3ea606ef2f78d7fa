package feature

import "fmt"

// Chain is an ordered, singly linked list of features anchored at a head.
//
// Aliases are unique within a chain. Every walk is bounded by the number of
// features the chain believes it holds, so a successor link edited outside
// the chain that forms a cycle is reported as ErrCycle instead of looping.
type Chain struct {
	head    Feature
	count   int
	aliases map[string]Feature

	grid        Grid
	attached    bool
	initialized map[string]bool
}

// NewChain creates a chain holding features in order.
func NewChain(features ...Feature) (*Chain, error) {
	c := &Chain{
		aliases:     make(map[string]Feature),
		initialized: make(map[string]bool),
	}
	for _, f := range features {
		if err := c.Add(f); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Head returns the first feature, or nil for an empty chain.
func (c *Chain) Head() Feature {
	return c.head
}

// Len returns the number of features.
func (c *Chain) Len() int {
	return c.count
}

// Find returns the feature with alias, or nil.
func (c *Chain) Find(alias string) Feature {
	return c.aliases[alias]
}

// Aliases returns the aliases in chain order.
func (c *Chain) Aliases() ([]string, error) {
	out := make([]string, 0, c.count)
	err := c.Walk(func(f Feature) bool {
		out = append(out, f.Alias())
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Walk calls fn for each feature from head to tail until fn returns false.
func (c *Chain) Walk(fn func(Feature) bool) error {
	steps := 0
	for f := c.head; f != nil; f = f.Next() {
		if steps >= c.count {
			return ErrCycle
		}
		steps++
		if !fn(f) {
			return nil
		}
	}
	return nil
}

// Validate checks that the links reach the tail in exactly Len steps and
// that every visited alias is registered.
func (c *Chain) Validate() error {
	seen := 0
	var stray string
	err := c.Walk(func(f Feature) bool {
		seen++
		if c.aliases[f.Alias()] != f {
			stray = f.Alias()
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if stray != "" {
		return fmt.Errorf("%w: linked feature %q is not registered", ErrFeatureNotFound, stray)
	}
	if seen != c.count {
		return fmt.Errorf("%w: walked %d of %d features", ErrCycle, seen, c.count)
	}
	return nil
}

// Add appends f at the tail.
func (c *Chain) Add(f Feature) error {
	if err := c.admit(f); err != nil {
		return err
	}

	if c.head == nil {
		return c.link(nil, f)
	}

	var tail Feature
	if err := c.Walk(func(cur Feature) bool {
		tail = cur
		return true
	}); err != nil {
		return err
	}
	return c.link(tail, f)
}

// InsertBefore links f immediately before the feature named alias.
func (c *Chain) InsertBefore(alias string, f Feature) error {
	if err := c.admit(f); err != nil {
		return err
	}
	if c.aliases[alias] == nil {
		return fmt.Errorf("%w: %q", ErrFeatureNotFound, alias)
	}

	prev, _, err := c.locate(alias)
	if err != nil {
		return err
	}
	return c.link(prev, f)
}

// InsertAfter links f immediately after the feature named alias.
func (c *Chain) InsertAfter(alias string, f Feature) error {
	if err := c.admit(f); err != nil {
		return err
	}

	target := c.aliases[alias]
	if target == nil {
		return fmt.Errorf("%w: %q", ErrFeatureNotFound, alias)
	}
	return c.link(target, f)
}

// Remove unlinks the feature named alias and returns it. The predecessor
// is relinked to the removed feature's successor.
func (c *Chain) Remove(alias string) (Feature, error) {
	if c.aliases[alias] == nil {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, alias)
	}

	prev, target, err := c.locate(alias)
	if err != nil {
		return nil, err
	}

	if prev == nil {
		c.head = target.Next()
	} else {
		prev.SetNext(target.Next())
	}
	target.SetNext(nil)

	delete(c.aliases, alias)
	c.count--

	if c.attached && c.initialized[alias] {
		if d, ok := target.(Detacher); ok {
			d.Detach(c.grid)
		}
	}
	delete(c.initialized, alias)

	return target, nil
}

// Attach binds the chain to g and initializes every feature once, in chain
// order. The first initialization failure stops the pass and leaves the
// chain unattached; features already initialized stay initialized, so a
// later Attach resumes with the feature that failed.
func (c *Chain) Attach(g Grid) error {
	if c.attached {
		return ErrAlreadyAttached
	}
	c.grid = g

	var initErr error
	err := c.Walk(func(f Feature) bool {
		initErr = c.initialize(f)
		return initErr == nil
	})
	if err == nil {
		err = initErr
	}
	if err != nil {
		return err
	}
	c.attached = true
	return nil
}

// Attached reports whether Attach has been called.
func (c *Chain) Attached() bool {
	return c.attached
}

func (c *Chain) initialize(f Feature) error {
	alias := f.Alias()
	if c.initialized[alias] {
		return nil
	}
	if init, ok := f.(Initializer); ok {
		if err := init.InitializeOn(c.grid); err != nil {
			return fmt.Errorf("initialize feature %q: %w", alias, err)
		}
	}
	c.initialized[alias] = true
	return nil
}

// admit checks that f may join the chain.
func (c *Chain) admit(f Feature) error {
	if f == nil {
		return ErrNilFeature
	}
	alias := f.Alias()
	if alias == "" {
		return ErrEmptyAlias
	}
	if c.aliases[alias] != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
	}
	if f.Next() != nil {
		return fmt.Errorf("%w: %q", ErrAlreadyLinked, alias)
	}
	return nil
}

// link places f after prev, or at the head when prev is nil.
func (c *Chain) link(prev, f Feature) error {
	if prev == nil {
		f.SetNext(c.head)
		c.head = f
	} else {
		f.SetNext(prev.Next())
		prev.SetNext(f)
	}
	c.aliases[f.Alias()] = f
	c.count++

	if !c.attached {
		return nil
	}
	if err := c.initialize(f); err != nil {
		if prev == nil {
			c.head = f.Next()
		} else {
			prev.SetNext(f.Next())
		}
		f.SetNext(nil)
		delete(c.aliases, f.Alias())
		c.count--
		return err
	}
	return nil
}

// locate finds the feature named alias and its predecessor.
func (c *Chain) locate(alias string) (prev, target Feature, err error) {
	var last Feature
	err = c.Walk(func(f Feature) bool {
		if f.Alias() == alias {
			target = f
			prev = last
			return false
		}
		last = f
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, alias)
	}
	return prev, target, nil
}
