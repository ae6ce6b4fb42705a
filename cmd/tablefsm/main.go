// Command tablefsm runs the table-driven state machines from a terminal, over
// HTTP or as an MCP server.
package main

func main() {
	Execute()
}
