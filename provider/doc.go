// Package provider implements a small generic provider framework for
// swappable backends.
//
// A Registry maps backend names to factories that build a provider from a
// generic config map, and caches created instances:
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("assemblyai", assemblyai.Factory())
//	p, err := reg.Instantiate("assemblyai", map[string]any{"api_key": key})
//
// Providers that hold pooled resources also implement Closeable; the owning
// component closes them on shutdown.
package provider
