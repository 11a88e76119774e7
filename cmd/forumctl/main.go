package main

import "Fishing_Forum/cmd/forumctl/commands"

func main() {
	commands.Execute()
}
