// Package toggleuserstatus implements the Toggle User Status use case.
//
// Toggling flips the member's active flag: a deactivated member keeps their
// rows but can no longer sign in, rent, or reserve. Admin accounts are
// protected and can never be toggled. The flip is guarded by the user
// version so two concurrent toggles cannot cancel each other out silently.
package toggleuserstatus
