// Package application runs the submit lifecycle of a role form: it keeps the
// applicant's values, validates them, hands valid applications to a
// submitter, and tracks the status line and success confirmation. A session
// allows one submission at a time.
package application
