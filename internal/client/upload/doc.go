// Package upload implements the report uploader: consent gating, file
// selection through the picker or a drop, client-side validation and the
// upload itself.
//
// The Workflow moves between three states:
//
//	Idle -> FileSelected -> Uploading -> Idle          (success)
//	                                  -> FileSelected  (failure, retry without re-selecting)
//
// Validation failures never reach the network. Selection and upload both
// require a session token; without one the AuthPrompter is asked to open
// the sign-in prompt and ErrAuthRequired is returned.
package upload
