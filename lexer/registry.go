package lexer

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
)

// Registry is the set of arguments known to a [Lexer].
//
// Arguments are stored once, in registration order, and indexed by long name,
// short character and identifier. The zero value is an empty registry ready
// for use. A Registry is safe for concurrent use, but arguments should be
// registered before the registry is shared with concurrent readers.
type Registry struct {
	mutex   sync.RWMutex
	arena   []Argument
	byLong  map[string]int
	byShort map[rune]int
	byID    map[string]int
}

// NewRegistry returns a registry containing the given arguments.
// Registration stops at the first argument that fails [Registry.Add].
func NewRegistry(args ...Argument) (*Registry, error) {
	var r Registry

	for _, arg := range args {
		if err := r.Add(arg); err != nil {
			return nil, err
		}
	}

	return &r, nil
}

// Add validates arg and inserts it into the registry.
//
// Add returns [ErrInvalidDefinition] if arg has no identifier or long name,
// if its short character is not an ASCII letter, or if it takes multiple
// values without a usable delimiter. It returns
// [ErrDuplicateDefinition] if arg shares its identifier, long name, or short
// character with a registered argument.
func (r *Registry) Add(arg Argument) error {
	if err := arg.validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.collision(arg); err != nil {
		return err
	}

	if r.byLong == nil {
		r.byLong = make(map[string]int)
		r.byShort = make(map[rune]int)
		r.byID = make(map[string]int)
	}

	pos := len(r.arena)
	r.arena = append(r.arena, arg)
	r.byLong[arg.Long] = pos
	r.byID[arg.ID] = pos

	if arg.Short != 0 {
		r.byShort[arg.Short] = pos
	}

	return nil
}

// collision returns ErrDuplicateDefinition if arg collides with any
// registered argument. Must be called with r.mutex held.
func (r *Registry) collision(arg Argument) error {
	dup := func(field, value string, pos int) error {
		return ErrDuplicateDefinition.
			Wrap(fmt.Errorf(
				"%s %q of %q is already used by %q",
				field, value, arg.ID, r.arena[pos].ID,
			)).
			With(
				slog.String("id", arg.ID),
				slog.String(field, value),
			)
	}

	if pos, ok := r.byID[arg.ID]; ok {
		return dup("id", arg.ID, pos)
	}

	if pos, ok := r.byLong[arg.Long]; ok {
		return dup("long", arg.Long, pos)
	}

	if arg.Short != 0 {
		if pos, ok := r.byShort[arg.Short]; ok {
			return dup("short", string(arg.Short), pos)
		}
	}

	return nil
}

// Clear removes all registered arguments.
func (r *Registry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.arena = nil
	r.byLong = nil
	r.byShort = nil
	r.byID = nil
}

// Len returns the number of registered arguments.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.arena)
}

// All returns an iterator over a snapshot of the registered arguments in
// registration order.
func (r *Registry) All() iter.Seq[Argument] {
	r.mutex.RLock()
	snapshot := slices.Clone(r.arena)
	r.mutex.RUnlock()

	return slices.Values(snapshot)
}

// LongNames returns the sorted long names of all registered arguments.
func (r *Registry) LongNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := r.longNames()
	slices.Sort(names)

	return names
}

// Long returns the argument registered with the given long name.
func (r *Registry) Long(name string) (Argument, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.long(name)
}

// Short returns the argument registered with the given short character.
func (r *Registry) Short(c rune) (Argument, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.short(c)
}

// ID returns the argument registered with the given identifier.
func (r *Registry) ID(id string) (Argument, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.id(id)
}

// The unlocked lookups below are used by the tokenizer, which holds the read
// lock for the duration of a scan.

func (r *Registry) long(name string) (Argument, bool) {
	return r.at(r.byLong, name)
}

func (r *Registry) short(c rune) (Argument, bool) {
	pos, ok := r.byShort[c]
	if !ok {
		return Argument{}, false
	}

	return r.arena[pos], true
}

func (r *Registry) id(id string) (Argument, bool) {
	return r.at(r.byID, id)
}

func (r *Registry) at(index map[string]int, key string) (Argument, bool) {
	pos, ok := index[key]
	if !ok {
		return Argument{}, false
	}

	return r.arena[pos], true
}

func (r *Registry) longNames() []string {
	names := make([]string, 0, len(r.arena))
	for _, arg := range r.arena {
		names = append(names, arg.Long)
	}

	return names
}
