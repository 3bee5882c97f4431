package scene

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
)

// DefaultBucketSize is the index bucket edge in pixels.
const DefaultBucketSize = 1024.0

// maxItemBuckets caps how many buckets one item is filed in. Larger or
// unbounded items go to a list that every query scans.
const maxItemBuckets = 4096

// maxBucketCoord keeps bucket coordinates well inside int range.
const maxBucketCoord = 1 << 40

type bucketKey struct {
	bx, by int
}

// bucketRange is an inclusive range of bucket keys.
type bucketRange struct {
	x0, y0, x1, y1 int
}

// Index is a uniform bucket grid over canvas boxes. Every item is filed in
// each bucket its bounding box overlaps; queries scan the buckets under the
// query box and filter by exact box overlap. It only narrows candidates;
// a linear scan would give the same answers.
type Index[T comparable] struct {
	size    float64
	buckets map[bucketKey][]T
	boxes   map[T]r2.Box
	large   []T

	// extent covers every bucket ever filled; queries never scan past it.
	extent    bucketRange
	hasExtent bool
}

// NewIndex creates an empty index. A non-positive size uses DefaultBucketSize.
func NewIndex[T comparable](size float64) *Index[T] {
	if size <= 0 {
		size = DefaultBucketSize
	}
	return &Index[T]{
		size:    size,
		buckets: make(map[bucketKey][]T),
		boxes:   make(map[T]r2.Box),
	}
}

// Len returns the number of indexed items.
func (ix *Index[T]) Len() int { return len(ix.boxes) }

// Insert files item under box. Re-inserting an item replaces its box.
func (ix *Index[T]) Insert(item T, box r2.Box) {
	if _, ok := ix.boxes[item]; ok {
		ix.Remove(item)
	}
	ix.boxes[item] = box

	r, ok := ix.itemRange(box)
	if !ok {
		ix.large = append(ix.large, item)
		return
	}
	ix.grow(r)
	ix.eachBucket(r, func(k bucketKey) {
		ix.buckets[k] = append(ix.buckets[k], item)
	})
}

// Remove drops item from the index. Returns false if it was not indexed.
func (ix *Index[T]) Remove(item T) bool {
	box, ok := ix.boxes[item]
	if !ok {
		return false
	}
	delete(ix.boxes, item)

	r, ok := ix.itemRange(box)
	if !ok {
		if i := slices.Index(ix.large, item); i >= 0 {
			ix.large = slices.Delete(ix.large, i, i+1)
		}
		return true
	}
	ix.eachBucket(r, func(k bucketKey) {
		items := ix.buckets[k]
		for i, it := range items {
			if it == item {
				items = append(items[:i], items[i+1:]...)
				break
			}
		}
		if len(items) == 0 {
			delete(ix.buckets, k)
		} else {
			ix.buckets[k] = items
		}
	})
	return true
}

// Query returns the items whose box overlaps area and that satisfy pred
// (nil pred accepts everything). Each item appears once. A box with NaN
// coordinates matches nothing; infinite boxes are fine.
func (ix *Index[T]) Query(area r2.Box, pred func(T) bool) []T {
	if hasNaN(area) {
		return nil
	}

	var out []T
	seen := make(map[T]struct{})
	visit := func(it T) {
		if _, dup := seen[it]; dup {
			return
		}
		seen[it] = struct{}{}
		if !geom.BoxesOverlap(ix.boxes[it], area) {
			return
		}
		if pred != nil && !pred(it) {
			return
		}
		out = append(out, it)
	}

	if r, ok := ix.queryRange(area); ok {
		ix.eachFilled(r, func(k bucketKey) {
			for _, it := range ix.buckets[k] {
				visit(it)
			}
		})
	}
	for _, it := range ix.large {
		visit(it)
	}
	return out
}

// itemRange returns the buckets box is filed in, or false if the box is
// not finite, lies past maxBucketCoord or spans more than maxItemBuckets.
func (ix *Index[T]) itemRange(box r2.Box) (bucketRange, bool) {
	x0, y0, x1, y1 := ix.span(box)
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.Abs(v) > maxBucketCoord {
			return bucketRange{}, false
		}
	}
	if (x1-x0+1)*(y1-y0+1) > maxItemBuckets {
		return bucketRange{}, false
	}
	return bucketRange{x0: int(x0), y0: int(y0), x1: int(x1), y1: int(y1)}, true
}

// queryRange clamps the buckets under area to the filled extent.
func (ix *Index[T]) queryRange(area r2.Box) (bucketRange, bool) {
	if !ix.hasExtent {
		return bucketRange{}, false
	}
	x0, y0, x1, y1 := ix.span(area)
	e := ix.extent
	x0 = math.Max(x0, float64(e.x0))
	y0 = math.Max(y0, float64(e.y0))
	x1 = math.Min(x1, float64(e.x1))
	y1 = math.Min(y1, float64(e.y1))
	if x0 > x1 || y0 > y1 {
		return bucketRange{}, false
	}
	return bucketRange{x0: int(x0), y0: int(y0), x1: int(x1), y1: int(y1)}, true
}

func (ix *Index[T]) grow(r bucketRange) {
	if !ix.hasExtent {
		ix.extent, ix.hasExtent = r, true
		return
	}
	e := &ix.extent
	e.x0, e.y0 = min(e.x0, r.x0), min(e.y0, r.y0)
	e.x1, e.y1 = max(e.x1, r.x1), max(e.y1, r.y1)
}

// span returns the bucket coordinates of box, floored toward -inf so
// negative coordinates land correctly.
func (ix *Index[T]) span(box r2.Box) (x0, y0, x1, y1 float64) {
	return math.Floor(box.Min.X / ix.size), math.Floor(box.Min.Y / ix.size),
		math.Floor(box.Max.X / ix.size), math.Floor(box.Max.Y / ix.size)
}

// eachBucket calls fn for every bucket in r, row by row.
func (ix *Index[T]) eachBucket(r bucketRange, fn func(bucketKey)) {
	for by := r.y0; by <= r.y1; by++ {
		for bx := r.x0; bx <= r.x1; bx++ {
			fn(bucketKey{bx: bx, by: by})
		}
	}
}

// eachFilled calls fn for the filled buckets in r, row by row. Wide
// ranges walk the filled buckets instead of every key in r.
func (ix *Index[T]) eachFilled(r bucketRange, fn func(bucketKey)) {
	area := float64(r.x1-r.x0+1) * float64(r.y1-r.y0+1)
	if area <= float64(len(ix.buckets)) {
		ix.eachBucket(r, func(k bucketKey) {
			if _, ok := ix.buckets[k]; ok {
				fn(k)
			}
		})
		return
	}

	keys := make([]bucketKey, 0, len(ix.buckets))
	for k := range ix.buckets {
		if k.bx >= r.x0 && k.bx <= r.x1 && k.by >= r.y0 && k.by <= r.y1 {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b bucketKey) int {
		if a.by != b.by {
			return cmp.Compare(a.by, b.by)
		}
		return cmp.Compare(a.bx, b.bx)
	})
	for _, k := range keys {
		fn(k)
	}
}

func hasNaN(b r2.Box) bool {
	return math.IsNaN(b.Min.X) || math.IsNaN(b.Min.Y) || math.IsNaN(b.Max.X) || math.IsNaN(b.Max.Y)
}
