// Package store holds the persistence contracts shared by the storage
// backends: the PatientStore interface, the store error vocabulary and
// RunInTransaction.
package store
