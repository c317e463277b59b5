// Package console holds the state of one mounted admin screen: the
// cached post collection, the active tab, and the create/edit modal
// state machine.
//
// The collection is fetched once per mount and replaced wholesale
// after a successful create or update. A delete splices the local
// slice with no re-fetch. Tab switches never touch the network.
// Opening the edit form fetches the target post first; if that fetch
// fails the modal never opens. A generation counter drops responses
// that arrive after a newer refresh or after unmount, and a busy flag
// rejects overlapping submissions.
package console
