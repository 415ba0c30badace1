// Package removeuser implements the Remove User use case.
//
// A member can only be deleted once every obligation is closed: no Active
// rental and no Active reservation may reference them. Admin accounts are
// protected and can never be deleted. The delete is guarded by the user
// version, so a rental or reservation racing the removal makes the delete
// miss and the decision re-runs against the new state.
package removeuser
