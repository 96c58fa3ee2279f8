// cmd/seqprof/main.go
package main

import (
	"seqprof/internal/app"
	"seqprof/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
