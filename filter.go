package pointbsp

import "github.com/RoaringBitmap/roaring/v2"

// FilterFunc reports whether a point identity is eligible for a query result.
type FilterFunc func(id uint32) bool

// BitmapFilter returns a FilterFunc that admits only identities contained in
// the given bitmap. The bitmap must not be mutated while queries run.
func BitmapFilter(bm *roaring.Bitmap) FilterFunc {
	return bm.Contains
}

// WithFilter restricts a single query to identities admitted by f.
//
// Example:
//
//	allowed := roaring.BitmapOf(1, 2, 5)
//	res, err := tree.Nearest(q, pointbsp.WithFilter(pointbsp.BitmapFilter(allowed)))
func WithFilter(f FilterFunc) func(o *SearchOptions) {
	return func(o *SearchOptions) {
		o.Filter = f
	}
}
