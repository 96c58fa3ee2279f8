// internal/version/version.go
package version

// Version is overridable at build time:
//
//	go build -ldflags "-X seqprof/internal/version.Version=v1.2.3" ./cmd/seqprof
var Version = "0.1.0"
