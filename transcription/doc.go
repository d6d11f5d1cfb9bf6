// Package transcription defines the provider interface and common types
// for speech-to-text backends that run jobs asynchronously.
//
// A backend accepts an audio URL, returns a job id at once, and is polled
// for the job record later. Real-time sessions are part of the interface
// but may be answered with a not-implemented placeholder.
//
// # Backends
//
//   - transcription/assemblyai: AssemblyAI REST API
//   - transcription/transcriptiontest: in-memory fake for tests
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(assemblyai.ProviderName, assemblyai.Factory())
//	p, err := reg.Instantiate(assemblyai.ProviderName, map[string]any{"api_key": key})
//	job, err := p.CreateJob(ctx, transcription.JobParams{AudioURL: url})
package transcription
