// Package skeletons discovers skeleton repositories published by an
// organization and renders them as an aligned listing.
package skeletons
