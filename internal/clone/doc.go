// Package clone derives a new repository from a skeleton: it clones the
// skeleton, rewrites repository references, records lineage, reconciles the
// destination remote, publishes the initial branches, and applies the
// standard repository and branch-protection policy.
package clone
