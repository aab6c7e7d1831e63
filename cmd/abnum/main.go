// cmd/abnum/main.go
package main

import (
	"abtools/internal/app"
	"abtools/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
