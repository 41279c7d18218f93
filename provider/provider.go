// Package provider implements translation backends for the transly gateway.
//
// Every backend translates a single text per call and reports failures as
// *transly.ProviderError. Callers normally wrap a provider in a
// transly.Gateway, which turns those failures into fallbacks.
package provider

import "github.com/ZaguanLabs/transly"

// Provider is an alias to the main package interface for convenience.
type Provider = transly.Provider
