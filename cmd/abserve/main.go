// cmd/abserve/main.go
package main

import (
	"abtools/internal/appshell"
	"abtools/internal/serveapp"
)

func main() {
	appshell.Serve(serveapp.RunContext)
}
