package main

import "todo-service.com/todo-service/cmd"

func main() {
	cmd.Execute()
}
