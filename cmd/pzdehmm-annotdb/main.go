package main

import (
	"pzdehmm/internal/annotdbapp"
	"pzdehmm/internal/appshell"
)

func main() { appshell.Main(annotdbapp.RunContext) }
