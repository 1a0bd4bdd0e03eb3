// Package intake resolves the patient an incoming appointment belongs to.
//
// Resolution goes through a PatientRepository collaborator: an explicit
// patient ID is trusted as is, otherwise the patient is looked up by name
// (and email) and created when nothing matches. A match is enriched with
// any contact details the caller supplied.
package intake
