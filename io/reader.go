package io

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Reader reads trees from a single LHaloTree file. The header is read and
// checked against the file's size when the Reader is opened.
//
// A Reader owns its file handle until Close is called.
type Reader struct {
	path   string
	f      *os.File
	order  binary.ByteOrder
	logger *slog.Logger
	hd     *Header
}

// Option configures a Reader.
type Option func(*Reader)

// WithByteOrder sets the byte order of the file. DefaultByteOrder is used
// otherwise.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(r *Reader) { r.order = order }
}

// WithLogger sets the logger that the Reader reports progress to. Nothing is
// logged otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// Criteria selects the first tree which has exactly NumRootFOFs halos at
// snapshot RootSnapNum and at least NumHalos halos in total.
type Criteria struct {
	NumRootFOFs int
	RootSnapNum int32
	NumHalos    int
}

func (c Criteria) String() string {
	return fmt.Sprintf("%d root FoFs at snapshot %d and at least %d halos",
		c.NumRootFOFs, c.RootSnapNum, c.NumHalos)
}

func (c Criteria) check() error {
	if c.NumRootFOFs < 0 {
		return configErrorf(
			"The number of root FoFs must be non-negative, but is %d.",
			c.NumRootFOFs,
		)
	} else if c.RootSnapNum < 0 {
		return configErrorf(
			"If selecting a tree based on the number of root FoFs, the root "+
				"snapshot must be non-negative, but is %d.", c.RootSnapNum,
		)
	} else if c.NumHalos < 0 {
		return configErrorf(
			"The minimum number of halos must be non-negative, but is %d.",
			c.NumHalos,
		)
	}
	return nil
}

// Match returns true if the given tree satisfies c.
func (c Criteria) Match(hs []Halo) bool {
	if len(hs) < c.NumHalos {
		return false
	}
	return countSnap(hs, c.RootSnapNum) == c.NumRootFOFs
}

func countSnap(hs []Halo, snap int32) int {
	n := 0
	for i := range hs {
		if hs[i].SnapNum == snap {
			n++
		}
	}
	return n
}

// Selection describes which tree a call to Select should return. Index is
// only used if ByIndex is set. If neither ByIndex nor Criteria is set, tree 0
// is selected.
type Selection struct {
	Index    int
	ByIndex  bool
	Criteria *Criteria
}

// Open opens the LHaloTree file at path and reads its header.
func Open(path string, opts ...Option) (*Reader, error) {
	r := &Reader{path: path, order: DefaultByteOrder}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if err := r.init(f); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) init(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()

	maxTrees := (size - headerPrefixSize) / 4
	if maxTrees < 0 {
		maxTrees = 0
	}
	hd, err := readHeader(f, r.order, maxTrees)
	if err != nil {
		return r.withPath(err)
	}

	if size != hd.FileSize() {
		return &FormatError{
			Path: r.path,
			Msg: fmt.Sprintf(
				"%d trees with %d total halos do not match the file size",
				hd.NTrees, hd.NHalos,
			),
			Expected: hd.FileSize(),
			Actual:   size,
		}
	}

	r.f, r.hd = f, hd
	r.logger.Debug("Opened LHaloTree file", "path", r.path,
		"trees", hd.NTrees, "halos", hd.NHalos)
	return nil
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

// Path returns the path the Reader was opened with.
func (r *Reader) Path() string { return r.path }

// Header returns the file's header. It must not be modified.
func (r *Reader) Header() *Header { return r.hd }

// ReadTree reads tree i. Earlier trees are skipped without being read.
func (r *Reader) ReadTree(i int) (*Tree, error) {
	if i < 0 || i >= int(r.hd.NTrees) {
		return nil, &RangeError{Path: r.path, Index: i, NTrees: int(r.hd.NTrees)}
	}

	if _, err := r.f.Seek(r.hd.TreeOffset(i), io.SeekStart); err != nil {
		return nil, err
	}
	hs, err := ReadHalos(r.f, r.order, int(r.hd.NHalosPerTree[i]))
	if err != nil {
		return nil, r.withPath(err)
	}

	r.logger.Debug("Read tree", "path", r.path, "tree", i, "halos", len(hs))
	return &Tree{Index: i, Halos: hs}, nil
}

// FindTree returns the first tree in the file which satisfies c. Every tree
// before the match is read and checked.
func (r *Reader) FindTree(c Criteria) (*Tree, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	_, maxHalos := r.hd.MaxTree()
	notFound := &NotFoundError{
		Path: r.path, Criteria: c,
		NTrees: int(r.hd.NTrees), MaxHalos: maxHalos,
	}
	// Maybe the caller asked for more halos than there are in any tree.
	if c.NumHalos > maxHalos {
		return nil, notFound
	}

	var found *Tree
	err := r.Each(func(t *Tree) error {
		if c.Match(t.Halos) {
			found = t
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	} else if found == nil {
		return nil, notFound
	}

	r.logger.Info("Found matching tree", "path", r.path, "tree", found.Index,
		"root_fofs", c.NumRootFOFs, "root_snap", c.RootSnapNum,
		"halos", found.Len())
	return found, nil
}

// Select returns the tree described by sel.
func (r *Reader) Select(sel Selection) (*Tree, error) {
	switch {
	case sel.ByIndex && sel.Criteria != nil:
		return nil, configErrorf(
			"Only one of a tree index and search criteria can be given. "+
				"Current values are %d and '%s' respectively.",
			sel.Index, *sel.Criteria,
		)
	case sel.Criteria != nil:
		return r.FindTree(*sel.Criteria)
	case sel.ByIndex:
		return r.ReadTree(sel.Index)
	default:
		return r.ReadTree(0)
	}
}

// errStop is returned by Each callbacks to end iteration early.
var errStop = errors.New("stop iteration")

// Each reads every tree in file order and calls fn on it. Iteration stops at
// the first non-nil error returned by fn, which Each then returns.
func (r *Reader) Each(fn func(t *Tree) error) error {
	if _, err := r.f.Seek(r.hd.Size(), io.SeekStart); err != nil {
		return err
	}
	for i := 0; i < int(r.hd.NTrees); i++ {
		hs, err := ReadHalos(r.f, r.order, int(r.hd.NHalosPerTree[i]))
		if err != nil {
			return r.withPath(err)
		}
		if err := fn(&Tree{Index: i, Halos: hs}); err != nil {
			return err
		}
	}
	return nil
}

// Forest is the fully materialized contents of an LHaloTree file.
type Forest struct {
	Header *Header
	Trees  []*Tree
}

// ReadForest reads every tree in the file.
func (r *Reader) ReadForest() (*Forest, error) {
	forest := &Forest{Header: r.hd, Trees: make([]*Tree, 0, r.hd.NTrees)}
	err := r.Each(func(t *Tree) error {
		forest.Trees = append(forest.Trees, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// ReadForest reads every tree in the LHaloTree file at path.
func ReadForest(path string, opts ...Option) (*Forest, error) {
	r, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadForest()
}

// withPath attaches the Reader's path to *FormatErrors.
func (r *Reader) withPath(err error) error {
	var ferr *FormatError
	if errors.As(err, &ferr) && ferr.Path == "" {
		ferr.Path = r.path
	}
	return err
}
