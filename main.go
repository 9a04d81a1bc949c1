package main

import (
	"statement-chat/cmd/ask"
	"statement-chat/cmd/process"
	"statement-chat/cmd/root"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
}

func main() {
	root.Execute()
}
