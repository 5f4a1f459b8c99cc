package main

import (
	"pzdehmm/internal/app"
	"pzdehmm/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
