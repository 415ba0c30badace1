// Package shell holds the imperative supporting layer around the pure
// decision functions: retry on concurrency conflicts, handler results,
// caller identity, and credential hashing. Everything stateful or
// side-effecting that the feature packages share lives here, so the decide
// functions in each feature stay free of I/O.
package shell
