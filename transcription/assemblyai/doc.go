// Package assemblyai implements transcription.Provider on top of the
// AssemblyAI v2 REST API.
//
// Every call is one HTTP round trip through httpclient, authenticated with
// the raw API key in the Authorization header. Nothing is retried or cached.
//
//	p, err := assemblyai.NewProvider(assemblyai.Config{APIKey: key})
//	job, err := p.CreateJob(ctx, transcription.JobParams{AudioURL: "https://x/a.mp3"})
//	rec, err := p.GetJob(ctx, job.ID)
package assemblyai
