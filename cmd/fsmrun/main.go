// Command fsmrun validates state machine tables and replays events against them.
package main

func main() {
	Execute()
}
