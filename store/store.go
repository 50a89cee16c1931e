// Package store implements the append-only indexed triple collection that
// backs all plugin metadata queries.
//
// The store is the union of every triple ingested from every loaded bundle
// plus any triples supplied by a dynamic manifest hook. Triples are never
// removed; the store only grows until its owning world is torn down.
//
// Writers must be externally serialized against each other and against
// readers. Concurrent read-only queries are safe: iteration state lives in
// the Iter, not the Store.
package store

import (
	"errors"
	"fmt"

	"github.com/c360studio/plughost/value"
)

// ErrBadSubject is returned by Add when the subject is not a URI or blank node.
var ErrBadSubject = errors.New("triple subject must be a URI or blank node")

// ErrBadPredicate is returned by Add when the predicate is not a URI.
var ErrBadPredicate = errors.New("triple predicate must be a URI")

// Triple is a single (subject, predicate, object) assertion.
type Triple struct {
	Subject   value.Value
	Predicate value.Value
	Object    value.Value
}

// String renders the triple in N-Triples style for diagnostics.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Store is an append-only triple collection with subject and predicate
// indexes. Pattern queries iterate matches in insertion order.
type Store struct {
	triples     []Triple
	bySubject   map[value.Value][]int
	byPredicate map[value.Value][]int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		bySubject:   make(map[value.Value][]int),
		byPredicate: make(map[value.Value][]int),
	}
}

// Size returns the number of triples held.
func (s *Store) Size() int { return len(s.triples) }

// Add appends a triple and updates the indexes. The subject must be a URI
// or blank node and the predicate a URI; anything else is rejected.
func (s *Store) Add(t Triple) error {
	if !t.Subject.IsURI() && !t.Subject.IsBlank() {
		return fmt.Errorf("%w: got %s", ErrBadSubject, t.Subject.Kind())
	}
	if !t.Predicate.IsURI() {
		return fmt.Errorf("%w: got %s", ErrBadPredicate, t.Predicate.Kind())
	}
	pos := len(s.triples)
	s.triples = append(s.triples, t)
	s.bySubject[t.Subject] = append(s.bySubject[t.Subject], pos)
	s.byPredicate[t.Predicate] = append(s.byPredicate[t.Predicate], pos)
	return nil
}

// AddAll adds every triple in order, stopping at the first invalid one.
func (s *Store) AddAll(ts []Triple) error {
	for _, t := range ts {
		if err := s.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Match returns an iterator over triples matching the pattern. A zero
// (nil-kind) Value is a wildcard for its position. Matches are yielded in
// insertion order; the iterator is lazy, finite, and restartable.
func (s *Store) Match(subj, pred, obj value.Value) *Iter {
	it := &Iter{st: s, subj: subj, pred: pred, obj: obj}
	// Walk the narrower of the applicable indexes; index position lists are
	// already in insertion order.
	switch {
	case !subj.IsNil() && !pred.IsNil():
		bs, bp := s.bySubject[subj], s.byPredicate[pred]
		if len(bs) <= len(bp) {
			it.candidates = bs
		} else {
			it.candidates = bp
		}
		it.indexed = true
	case !subj.IsNil():
		it.candidates = s.bySubject[subj]
		it.indexed = true
	case !pred.IsNil():
		it.candidates = s.byPredicate[pred]
		it.indexed = true
	}
	return it
}

// All returns an iterator over every triple in insertion order.
func (s *Store) All() *Iter {
	return s.Match(value.Value{}, value.Value{}, value.Value{})
}

// Has reports whether at least one triple matches the pattern.
func (s *Store) Has(subj, pred, obj value.Value) bool {
	_, ok := s.Match(subj, pred, obj).Next()
	return ok
}

// First returns the first matching triple in insertion order.
func (s *Store) First(subj, pred, obj value.Value) (Triple, bool) {
	return s.Match(subj, pred, obj).Next()
}

// Objects returns the objects of all triples matching (subj, pred, *),
// in insertion order.
func (s *Store) Objects(subj, pred value.Value) []value.Value {
	var out []value.Value
	it := s.Match(subj, pred, value.Value{})
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		out = append(out, t.Object)
	}
	return out
}

// Subjects returns the subjects of all triples matching (*, pred, obj),
// in insertion order.
func (s *Store) Subjects(pred, obj value.Value) []value.Value {
	var out []value.Value
	it := s.Match(value.Value{}, pred, obj)
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		out = append(out, t.Subject)
	}
	return out
}

// Iter iterates the triples matching a pattern. The zero Iter is not valid;
// obtain one from Match or All.
type Iter struct {
	st         *Store
	subj       value.Value
	pred       value.Value
	obj        value.Value
	candidates []int
	indexed    bool
	pos        int
}

func (it *Iter) matches(t Triple) bool {
	if !it.subj.IsNil() && !t.Subject.Equals(it.subj) {
		return false
	}
	if !it.pred.IsNil() && !t.Predicate.Equals(it.pred) {
		return false
	}
	if !it.obj.IsNil() && !t.Object.Equals(it.obj) {
		return false
	}
	return true
}

// Next returns the next matching triple. The second result is false once
// the sequence is exhausted.
func (it *Iter) Next() (Triple, bool) {
	if it.indexed {
		for it.pos < len(it.candidates) {
			t := it.st.triples[it.candidates[it.pos]]
			it.pos++
			if it.matches(t) {
				return t, true
			}
		}
		return Triple{}, false
	}
	for it.pos < len(it.st.triples) {
		t := it.st.triples[it.pos]
		it.pos++
		if it.matches(t) {
			return t, true
		}
	}
	return Triple{}, false
}

// Reset restarts the iterator from the beginning of the match sequence.
func (it *Iter) Reset() { it.pos = 0 }

// Collect drains the iterator into a slice. The iterator is reset first,
// so Collect always returns the full match set.
func (it *Iter) Collect() []Triple {
	it.Reset()
	var out []Triple
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		out = append(out, t)
	}
	return out
}
