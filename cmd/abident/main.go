// cmd/abident/main.go
package main

import (
	"abtools/internal/appshell"
	"abtools/internal/identapp"
)

func main() {
	appshell.Main(identapp.RunContext)
}
